package vocabulary

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"net/url"
	"strconv"

	"github.com/engvoca/backend/internal/generator"
	"github.com/engvoca/backend/internal/models"
	"github.com/engvoca/backend/internal/ollama"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// GenerateWord handles POST /api/v1/words/generate-one.
func (h *Handler) GenerateWord(w http.ResponseWriter, r *http.Request) {
	var req models.GenerateWordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if !validLevel(&req.SchoolLevel) {
		writeError(w, http.StatusBadRequest, "schoolLevel must be 'elementary', 'middle' or 'high'")
		return
	}

	item, err := h.service.GenerateOne(r.Context(), req)
	if err != nil {
		writeGenerationError(w, "generate word", err)
		return
	}

	writeJSON(w, http.StatusOK, models.DataResponse{Status: "success", Data: item})
}

// GenerateWords handles POST /api/v1/words/generate. A short delivery
// still answers 200 with whatever was produced: plain word lists have
// no fixed-size requirement.
func (h *Handler) GenerateWords(w http.ResponseWriter, r *http.Request) {
	var req models.GenerateWordsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Count <= 0 {
		req.Count = 10
	}
	if req.Count > 50 {
		writeError(w, http.StatusBadRequest, "count must be at most 50")
		return
	}
	if !validLevel(&req.SchoolLevel) {
		writeError(w, http.StatusBadRequest, "schoolLevel must be 'elementary', 'middle' or 'high'")
		return
	}

	items, err := h.service.GenerateWords(r.Context(), req)
	if err != nil {
		var short *generator.ShortDeliveryError
		if errors.As(err, &short) {
			log.Printf("WARN: [vocabulary] delivering %d of %d requested words", short.Delivered, short.Requested)
			writeJSON(w, http.StatusOK, models.DataResponse{Status: "success", Count: len(short.Items), Data: short.Items})
			return
		}
		writeGenerationError(w, "generate words", err)
		return
	}

	writeJSON(w, http.StatusOK, models.DataResponse{Status: "success", Count: len(items), Data: items})
}

// GenerateVocabulary handles POST /api/v1/vocabulary/generate.
func (h *Handler) GenerateVocabulary(w http.ResponseWriter, r *http.Request) {
	var req models.GenerateVocabularyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Count > 50 {
		writeError(w, http.StatusBadRequest, "count must be at most 50")
		return
	}
	if !validLevel(&req.SchoolLevel) {
		writeError(w, http.StatusBadRequest, "school_level must be 'elementary', 'middle' or 'high'")
		return
	}

	items, err := h.service.GenerateVocabulary(r.Context(), req)
	if err != nil {
		writeGenerationError(w, "generate vocabulary", err)
		return
	}

	writeJSON(w, http.StatusOK, models.DataResponse{Status: "success", Count: len(items), Data: items})
}

// GenerateOptions handles POST /api/v1/vocabulary/generate-options.
func (h *Handler) GenerateOptions(w http.ResponseWriter, r *http.Request) {
	var req models.GenerateOptionsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if len(req.Items) == 0 {
		writeError(w, http.StatusBadRequest, "items must not be empty")
		return
	}
	if req.UserID == "" || req.VocaID == "" {
		writeError(w, http.StatusBadRequest, "userId and vocaId are required")
		return
	}
	for _, pair := range req.Items {
		if pair.Word == "" || pair.Meaning == "" {
			writeError(w, http.StatusBadRequest, "every item needs word and meaning")
			return
		}
	}

	records, err := h.service.GenerateOptions(r.Context(), req)
	if err != nil {
		writeGenerationError(w, "generate options", err)
		return
	}

	writeJSON(w, http.StatusOK, models.DataResponse{Status: "success", Count: len(records), Data: records})
}

// ListVocabulary handles GET /api/v1/vocabulary.
func (h *Handler) ListVocabulary(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	userID := query.Get("userId")
	vocaID := query.Get("vocaId")
	if userID == "" || vocaID == "" {
		writeError(w, http.StatusBadRequest, "userId and vocaId are required")
		return
	}

	limit := intQueryParam(query, "limit", 20)
	if limit > 100 {
		limit = 100
	}
	skip := intQueryParam(query, "skip", 0)

	records, err := h.service.ListItems(userID, vocaID, limit, skip)
	if err != nil {
		log.Printf("List vocabulary failed: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to load vocabulary")
		return
	}

	writeJSON(w, http.StatusOK, models.DataResponse{Status: "success", Count: len(records), Data: records})
}

// GenerateRoulette handles POST /api/v1/roulette/generate.
func (h *Handler) GenerateRoulette(w http.ResponseWriter, r *http.Request) {
	var req models.RouletteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Word == "" {
		writeError(w, http.StatusBadRequest, "word is required")
		return
	}

	items, err := h.service.BuildRoulette(r.Context(), req)
	if err != nil {
		writeGenerationError(w, "generate roulette", err)
		return
	}

	writeJSON(w, http.StatusOK, models.DataResponse{Status: "success", Count: len(items), Data: items})
}

// ── Helpers ─────────────────────────────────────────────

// validLevel checks an optional school level, defaulting empty to
// middle school.
func validLevel(level *models.SchoolLevel) bool {
	if *level == "" {
		*level = models.LevelMiddle
		return true
	}
	return models.ValidSchoolLevels[*level]
}

func writeGenerationError(w http.ResponseWriter, op string, err error) {
	log.Printf("%s failed: %v", op, err)
	switch {
	case errors.Is(err, ollama.ErrBackendUnavailable):
		writeError(w, http.StatusServiceUnavailable, "Generation backend is unavailable")
	case errors.Is(err, ollama.ErrBackendProtocol):
		writeError(w, http.StatusBadGateway, "Generation backend returned an invalid reply")
	default:
		writeError(w, http.StatusInternalServerError, "Generation failed: "+err.Error())
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, models.ErrorResponse{Status: "error", Message: message})
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func intQueryParam(query url.Values, key string, defaultVal int) int {
	s := query.Get(key)
	if s == "" {
		return defaultVal
	}
	v, err := strconv.Atoi(s)
	if err != nil || v < 0 {
		return defaultVal
	}
	return v
}
