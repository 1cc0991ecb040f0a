package main

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/fxamacker/cbor/v2"
	"github.com/google/uuid"
	"github.com/rs/cors"
	"github.com/samber/lo"
	"go.uber.org/zap"

	mecab "github.com/mecab-ko/mecab-go"
)

const (
	contentTypeJSON = "application/json"
	contentTypeCBOR = "application/cbor"
	contentTypeText = "text/plain; charset=utf-8"
)

// ---- response types -----------------------------------------------------

type featureJSON struct {
	POS          string  `json:"pos"`
	Semantic     *string `json:"semantic"`
	HasJongseong *bool   `json:"has_jongseong"`
	Reading      *string `json:"reading"`
	Type         *string `json:"type"`
	StartPOS     *string `json:"start_pos"`
	EndPOS       *string `json:"end_pos"`
	Expression   *string `json:"expression"`
}

type tokenJSON struct {
	Surface string      `json:"surface"`
	Feature featureJSON `json:"feature"`
}

type parseResponse struct {
	Tokens []tokenJSON `json:"tokens"`
}

type posResponse struct {
	Tags []mecab.TaggedSurface `json:"tags"`
}

type morphsResponse struct {
	Morphs []string `json:"morphs"`
}

type nounsResponse struct {
	Nouns []string `json:"nouns"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func toFeatureJSON(f mecab.Feature) featureJSON {
	out := featureJSON{
		POS:        f.POS,
		Semantic:   f.Semantic,
		Reading:    f.Reading,
		Type:       f.Type,
		StartPOS:   f.StartPOS,
		EndPOS:     f.EndPOS,
		Expression: f.Expression,
	}
	if v, ok := f.HasJongseong.Bool(); ok {
		out.HasJongseong = &v
	}
	return out
}

func toTokensJSON(tokens []mecab.Token) []tokenJSON {
	return lo.Map(tokens, func(t mecab.Token, _ int) tokenJSON {
		return tokenJSON{Surface: t.Surface, Feature: toFeatureJSON(t.Feature)}
	})
}

// ---- server ---------------------------------------------------------------

// server serialises access to a single Tagger, which is not safe for
// concurrent use.
type server struct {
	mu     sync.Mutex
	tagger *mecab.Tagger
	logger *zap.Logger
}

func newServer(tagger *mecab.Tagger, logger *zap.Logger) *server {
	return &server{tagger: tagger, logger: logger}
}

// handler returns the routed API wrapped in CORS and request logging.
func (s *server) handler(allowedOrigins []string) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/parse", s.handleParse)
	mux.HandleFunc("/api/pos", s.handlePos)
	mux.HandleFunc("/api/morphs", s.handleMorphs)
	mux.HandleFunc("/api/nouns", s.handleNouns)
	mux.HandleFunc("/healthz", s.handleHealth)

	c := cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost},
		AllowedHeaders: []string{"Content-Type", "Accept"},
		ExposedHeaders: []string{"X-Request-Id"},
	})
	return s.logRequests(c.Handler(mux))
}

// ---- helpers --------------------------------------------------------------

type analyzeRequest struct {
	Text      string `json:"text"`
	DropSpace *bool  `json:"drop_space"`
}

// readRequest accepts either GET ?text=…&drop_space=… or a POST JSON body.
// drop_space defaults to true.
func readRequest(r *http.Request) (text string, dropSpace bool, err error) {
	switch r.Method {
	case http.MethodGet:
		q := r.URL.Query()
		text = q.Get("text")
		dropSpace = true
		if v := q.Get("drop_space"); v != "" {
			dropSpace, err = strconv.ParseBool(v)
			if err != nil {
				return "", false, errors.Newf("invalid 'drop_space' value %q", v)
			}
		}
	case http.MethodPost:
		var body analyzeRequest
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			return "", false, errors.New("body must be JSON with a 'text' field")
		}
		text = body.Text
		dropSpace = body.DropSpace == nil || *body.DropSpace
	default:
		return "", false, errMethod
	}
	if text == "" {
		return "", false, errors.New("missing 'text'")
	}
	return text, dropSpace, nil
}

var errMethod = errors.New("GET or POST required")

func wantsCBOR(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), contentTypeCBOR)
}

func (s *server) write(w http.ResponseWriter, r *http.Request, status int, v any) {
	if wantsCBOR(r) {
		data, err := cbor.Marshal(v)
		if err != nil {
			s.logger.Error("encode cbor", zap.Error(err))
			http.Error(w, "encode error", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", contentTypeCBOR)
		w.WriteHeader(status)
		_, _ = w.Write(data)
		return
	}
	w.Header().Set("Content-Type", contentTypeJSON)
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Warn("encode json", zap.Error(err))
	}
}

func (s *server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	var ae *mecab.AnalysisError
	switch {
	case errors.Is(err, errMethod):
		status = http.StatusMethodNotAllowed
	case errors.As(err, &ae):
		status = http.StatusUnprocessableEntity
	}
	if status == http.StatusInternalServerError {
		s.logger.Error("analysis", zap.String("path", r.URL.Path), zap.Error(err))
	}
	s.write(w, r, status, errorResponse{Error: err.Error()})
}

func (s *server) badRequest(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, errMethod) {
		s.writeError(w, r, err)
		return
	}
	s.write(w, r, http.StatusBadRequest, errorResponse{Error: err.Error()})
}

// ---- handlers -------------------------------------------------------------

func (s *server) handleParse(w http.ResponseWriter, r *http.Request) {
	text, dropSpace, err := readRequest(r)
	if err != nil {
		s.badRequest(w, r, err)
		return
	}
	s.mu.Lock()
	tokens, err := s.tagger.Tokenize(text, dropSpace)
	s.mu.Unlock()
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	if r.URL.Query().Get("format") == "mecab" {
		var b strings.Builder
		for _, t := range tokens {
			b.WriteString(t.Surface)
			b.WriteByte('\t')
			b.WriteString(t.Feature.Encode())
			b.WriteByte('\n')
		}
		b.WriteString("EOS\n")
		w.Header().Set("Content-Type", contentTypeText)
		_, _ = w.Write([]byte(b.String()))
		return
	}
	s.write(w, r, http.StatusOK, parseResponse{Tokens: toTokensJSON(tokens)})
}

func (s *server) handlePos(w http.ResponseWriter, r *http.Request) {
	text, dropSpace, err := readRequest(r)
	if err != nil {
		s.badRequest(w, r, err)
		return
	}
	s.mu.Lock()
	tags, err := s.tagger.Tags(text, dropSpace)
	s.mu.Unlock()
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.write(w, r, http.StatusOK, posResponse{Tags: tags})
}

func (s *server) handleMorphs(w http.ResponseWriter, r *http.Request) {
	text, dropSpace, err := readRequest(r)
	if err != nil {
		s.badRequest(w, r, err)
		return
	}
	s.mu.Lock()
	morphs, err := s.tagger.Surfaces(text, dropSpace)
	s.mu.Unlock()
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.write(w, r, http.StatusOK, morphsResponse{Morphs: morphs})
}

func (s *server) handleNouns(w http.ResponseWriter, r *http.Request) {
	text, dropSpace, err := readRequest(r)
	if err != nil {
		s.badRequest(w, r, err)
		return
	}
	s.mu.Lock()
	nouns, err := s.tagger.Nouns(text, dropSpace)
	s.mu.Unlock()
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if nouns == nil {
		nouns = []string{}
	}
	s.write(w, r, http.StatusOK, nounsResponse{Nouns: nouns})
}

func (s *server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.write(w, r, http.StatusOK, map[string]string{"status": "ok"})
}

// ---- middleware -----------------------------------------------------------

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (s *server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-Id")
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-Id", id)

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()
		next.ServeHTTP(rec, r)
		s.logger.Info("request",
			zap.String("request_id", id),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", rec.status),
			zap.Duration("duration", time.Since(start)))
	})
}
