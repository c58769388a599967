package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	app "pip-counter/internal/application"
	"pip-counter/internal/domain/entity"
)

const maxUploadSize = 32 << 20

type Handler struct {
	counter *app.CountingService
	slider  entity.ThresholdSlider
}

func NewHandler(counter *app.CountingService, slider entity.ThresholdSlider) *Handler {
	return &Handler{
		counter: counter,
		slider:  slider,
	}
}

// NewRouter регистрирует маршруты
func NewRouter(h *Handler) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/count", h.CountHandler)
	mux.HandleFunc("/health", h.HealthHandler)
	return mux
}

type detectionResponse struct {
	Index int     `json:"index"`
	X     int     `json:"x"`
	Y     int     `json:"y"`
	Area  float64 `json:"area"`
}

type countResponse struct {
	Count      int                 `json:"count"`
	Caption    string              `json:"caption"`
	Threshold  int                 `json:"threshold"`
	Detections []detectionResponse `json:"detections"`
}

// CountHandler обрабатывает POST /count
func (h *Handler) CountHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		respondError(w, "Failed to parse form", http.StatusBadRequest)
		return
	}

	threshold := h.slider.Default
	if v := r.FormValue("threshold"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil {
			respondError(w, fmt.Sprintf("threshold must be an integer, got %q", v), http.StatusBadRequest)
			return
		}
		threshold = parsed
	}

	file, _, err := r.FormFile("image")
	if err != nil {
		respondError(w, "No image uploaded", http.StatusBadRequest)
		return
	}
	defer file.Close()

	imageData, err := io.ReadAll(file)
	if err != nil {
		respondError(w, "Failed to read image", http.StatusInternalServerError)
		return
	}

	out, err := h.counter.CountBytes(r.Context(), imageData, threshold)
	switch {
	case errors.Is(err, app.ErrNoImage),
		errors.Is(err, entity.ErrInvalidImage),
		errors.Is(err, entity.ErrInvalidThreshold):
		respondError(w, err.Error(), http.StatusBadRequest)
		return
	case err != nil:
		respondError(w, fmt.Sprintf("Counting failed: %v", err), http.StatusInternalServerError)
		return
	case out == nil:
		w.WriteHeader(http.StatusNoContent)
		return
	}

	if r.URL.Query().Get("format") == "json" {
		resp := countResponse{
			Count:      out.Result.Count,
			Caption:    out.Result.Caption,
			Threshold:  threshold,
			Detections: make([]detectionResponse, 0, len(out.Result.Detections)),
		}
		for _, d := range out.Result.Detections {
			x, y := d.Center()
			resp.Detections = append(resp.Detections, detectionResponse{Index: d.Index, X: x, Y: y, Area: d.Area})
		}
		respondJSON(w, resp, http.StatusOK)
		return
	}

	w.Header().Set("Content-Type", out.MimeType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("inline; filename=%q", out.Filename))
	w.Header().Set("X-Pip-Count", strconv.Itoa(out.Result.Count))
	w.WriteHeader(http.StatusOK)
	w.Write(out.Annotated)
}

// HealthHandler проверка здоровья сервиса
func (h *Handler) HealthHandler(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, map[string]string{"status": "ok"}, http.StatusOK)
}

func respondJSON(w http.ResponseWriter, data interface{}, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, message string, status int) {
	respondJSON(w, map[string]string{"error": message}, status)
}
