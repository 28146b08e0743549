package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"gagyebu/internal/core"
	"gagyebu/internal/services"
	"gagyebu/internal/sheets"
)

type parseRequest struct {
	Transcript string `json:"transcript"`
}

type saveRequest struct {
	Expenses []core.ExpenseRecord `json:"expenses"`
}

type errorResponse struct {
	Error string `json:"error"`
}

type saveResponse struct {
	Success      bool                 `json:"success"`
	Message      string               `json:"message"`
	Records      []core.ExpenseRecord `json:"records,omitempty"`
	UpdatedRows  int64                `json:"updatedRows"`
	UpdatedRange string               `json:"updatedRange,omitempty"`
}

// handleParse previews the parser output without storing anything.
func (s *Server) handleParse(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "POST만 지원합니다.")
		return
	}

	var req parseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "유효하지 않은 데이터입니다.")
		return
	}

	records, err := s.svc.ParseTranscript(req.Transcript)
	if err != nil {
		writeError(w, http.StatusBadRequest, "유효하지 않은 데이터입니다.")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"records": records})
}

// handleVoice parses a transcript and stores the resulting records.
func (s *Server) handleVoice(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "POST만 지원합니다.")
		return
	}

	var req parseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "유효하지 않은 데이터입니다.")
		return
	}

	records, res, err := s.svc.CaptureVoice(r.Context(), req.Transcript)
	if err != nil {
		if errors.Is(err, services.ErrEmptyTranscript) {
			writeError(w, http.StatusBadRequest, "유효하지 않은 데이터입니다.")
			return
		}
		writeStoreError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, saveResponse{
		Success:      true,
		Message:      saveMessage(len(records)),
		Records:      records,
		UpdatedRows:  res.UpdatedRows,
		UpdatedRange: res.UpdatedRange,
	})
}

// handleExpenses stores records already shaped by a client, typically
// after the user edited the parsed preview.
func (s *Server) handleExpenses(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "POST만 지원합니다.")
		return
	}

	var req saveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || len(req.Expenses) == 0 {
		writeError(w, http.StatusBadRequest, "유효하지 않은 데이터입니다.")
		return
	}

	res, err := s.svc.SaveRecords(r.Context(), req.Expenses)
	if err != nil {
		writeStoreError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, saveResponse{
		Success:      true,
		Message:      saveMessage(len(req.Expenses)),
		UpdatedRows:  res.UpdatedRows,
		UpdatedRange: res.UpdatedRange,
	})
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "GET만 지원합니다.")
		return
	}

	summary, err := s.svc.Summary(r.Context())
	if err != nil {
		writeStoreError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "GET만 지원합니다.")
		return
	}

	if err := s.svc.Status(r.Context()); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]any{
			"status":  "configuration_error",
			"message": "저장소 연결에 문제가 있습니다.",
			"error":   storeErrorMessage(err),
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"status":    "ready",
		"message":   "가계부 저장소가 준비되었습니다.",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

func saveMessage(n int) string {
	return strconv.Itoa(n) + "개의 항목이 성공적으로 저장되었습니다."
}

// storeErrorMessage maps store failures to the user-facing messages the
// clients show verbatim.
func storeErrorMessage(err error) string {
	switch {
	case errors.Is(err, sheets.ErrPermissionDenied):
		return "구글 시트 접근 권한이 없습니다. 서비스 계정 설정을 확인해주세요."
	case errors.Is(err, sheets.ErrNotFound):
		return "지정된 구글 시트를 찾을 수 없습니다."
	case errors.Is(err, sheets.ErrInvalidRange):
		return "구글 시트 ID가 올바르지 않습니다."
	default:
		return "가계부 저장 중 오류가 발생했습니다."
	}
}

func writeStoreError(w http.ResponseWriter, r *http.Request, err error) {
	slog.ErrorContext(r.Context(), "store operation failed", "error", err)
	writeError(w, http.StatusInternalServerError, storeErrorMessage(err))
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
