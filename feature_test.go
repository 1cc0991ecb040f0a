package mecab

import (
	"encoding/json"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeFeatureAllSentinels(t *testing.T) {
	f, err := DecodeFeature("*,*,T,*,*,*,*,*")
	require.NoError(t, err)

	assert.Equal(t, "", f.POS)
	assert.Nil(t, f.Semantic)
	assert.Equal(t, JongseongTrue, f.HasJongseong)
	assert.Nil(t, f.Reading)
	assert.Nil(t, f.Type)
	assert.Nil(t, f.StartPOS)
	assert.Nil(t, f.EndPOS)
	assert.Nil(t, f.Expression)
}

func TestDecodeFeatureCompound(t *testing.T) {
	f, err := DecodeFeature("VV+EP,*,T,갔,Inflect,VV,EP,가/VV/*+았/EP/*")
	require.NoError(t, err)

	assert.Equal(t, "VV+EP", f.POS)
	assert.Nil(t, f.Semantic)
	assert.Equal(t, JongseongTrue, f.HasJongseong)
	require.NotNil(t, f.Reading)
	assert.Equal(t, "갔", *f.Reading)
	require.NotNil(t, f.Type)
	assert.Equal(t, "Inflect", *f.Type)
	require.NotNil(t, f.StartPOS)
	assert.Equal(t, "VV", *f.StartPOS)
	require.NotNil(t, f.EndPOS)
	assert.Equal(t, "EP", *f.EndPOS)
	require.NotNil(t, f.Expression)
	assert.Equal(t, "가/VV/*+았/EP/*", *f.Expression)
}

func TestDecodeFeatureJongseong(t *testing.T) {
	tests := []struct {
		raw  string
		want Jongseong
	}{
		{"NNG,*,T,밥,*,*,*,*", JongseongTrue},
		{"NP,*,F,나,*,*,*,*", JongseongFalse},
		{"SF,*,*,*,*,*,*,*", JongseongUnknown},
		{"SL,*,t,*,*,*,*,*", JongseongUnknown},
		{"SL,*,,*,*,*,*,*", JongseongUnknown},
	}
	for _, tt := range tests {
		f, err := DecodeFeature(tt.raw)
		require.NoError(t, err, tt.raw)
		assert.Equal(t, tt.want, f.HasJongseong, tt.raw)
	}
}

func TestDecodeFeatureArity(t *testing.T) {
	for _, raw := range []string{
		"",
		"NNG",
		"NNG,*,T,밥,*,*,*",
		"NNG,*,T,밥,*,*,*,*,*",
		"BOS/EOS,*,*,*,*,*,*,*,*,*",
	} {
		_, err := DecodeFeature(raw)
		var mfe *MalformedFeatureError
		require.True(t, errors.As(err, &mfe), "raw %q: got %v", raw, err)
		assert.Equal(t, raw, mfe.Raw)
		assert.NotEqual(t, featureFields, mfe.Fields)
	}
}

func TestDecodeFeatureKeepsEmptyField(t *testing.T) {
	f, err := DecodeFeature("NNG,,T,밥,*,*,*,*")
	require.NoError(t, err)
	require.NotNil(t, f.Semantic)
	assert.Equal(t, "", *f.Semantic)
}

func TestFeatureEncode(t *testing.T) {
	for _, raw := range []string{
		"NNP,지명,T,서울,*,*,*,*",
		"VV+EP,*,T,갔,Inflect,VV,EP,가/VV/*+았/EP/*",
		"SF,*,*,*,*,*,*,*",
	} {
		f, err := DecodeFeature(raw)
		require.NoError(t, err)
		assert.Equal(t, raw, f.Encode())
	}
	assert.Equal(t, "SP,*,*,*,*,*,*,*", SpaceFeature().Encode())
}

func TestSpaceFeature(t *testing.T) {
	f := SpaceFeature()
	assert.Equal(t, "SP", f.POS)
	assert.Equal(t, JongseongUnknown, f.HasJongseong)
	assert.Nil(t, f.Semantic)
	assert.Nil(t, f.Reading)
	assert.Nil(t, f.Type)
	assert.Nil(t, f.StartPOS)
	assert.Nil(t, f.EndPOS)
	assert.Nil(t, f.Expression)
	assert.True(t, f.IsSpace())
}

func TestJongseong(t *testing.T) {
	v, ok := JongseongTrue.Bool()
	assert.True(t, v)
	assert.True(t, ok)
	v, ok = JongseongFalse.Bool()
	assert.False(t, v)
	assert.True(t, ok)
	_, ok = JongseongUnknown.Bool()
	assert.False(t, ok)

	f, err := DecodeFeature("NP,*,F,나,*,*,*,*")
	require.NoError(t, err)
	data, err := json.Marshal(f)
	require.NoError(t, err)
	assert.JSONEq(t, `{"pos":"NP","semantic":null,"has_jongseong":false,"reading":"나",
		"type":null,"start_pos":null,"end_pos":null,"expression":null}`, string(data))

	var j Jongseong
	require.NoError(t, json.Unmarshal([]byte("null"), &j))
	assert.Equal(t, JongseongUnknown, j)
	require.NoError(t, json.Unmarshal([]byte("true"), &j))
	assert.Equal(t, JongseongTrue, j)
	assert.Error(t, json.Unmarshal([]byte(`"T"`), &j))
}
