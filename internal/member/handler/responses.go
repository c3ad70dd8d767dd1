package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"memberlist/internal/member/models"
	dErrors "memberlist/pkg/domain-errors"
)

// API-visible messages, matching the original member list service.
const (
	msgListSuccess     = "メンバー一覧の取得が完了しました"
	msgCreateSuccess   = "登録が完了しました"
	msgValidationError = "バリデーションエラーです"
	msgInternalError   = "サーバーエラーが発生しました"
)

// APIResponse is the success envelope shared by all endpoints.
type APIResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Data    any    `json:"data"`
}

// ErrorResponse is the error envelope. Errors is present only for business
// rejections (validation failures, duplicate email).
type ErrorResponse struct {
	Status  string   `json:"status"`
	Message string   `json:"message"`
	Errors  []string `json:"errors,omitempty"`
}

// MemberView is the wire representation of a member. Optional fields
// serialize as null when absent; timestamps use RFC 3339.
type MemberView struct {
	ID               int64     `json:"id"`
	Name             string    `json:"name"`
	NameKana         string    `json:"nameKana"`
	Email            string    `json:"email"`
	Position         *string   `json:"position"`
	Location         *string   `json:"location"`
	ProfileImageURL  *string   `json:"profileImageUrl"`
	SelfIntroduction *string   `json:"selfIntroduction"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

func newMemberView(m *models.Member) MemberView {
	return MemberView{
		ID:               m.ID,
		Name:             m.Name,
		NameKana:         m.NameKana,
		Email:            m.Email,
		Position:         m.Position,
		Location:         m.Location,
		ProfileImageURL:  m.ProfileImageURL,
		SelfIntroduction: m.SelfIntroduction,
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
	}
}

func writeSuccess(w http.ResponseWriter, status int, message string, data any) {
	writeJSON(w, status, APIResponse{
		Status:  "success",
		Message: message,
		Data:    data,
	})
}

// writeError translates domain errors into the error envelope. Validation
// failures and duplicate emails are expected business outcomes and map to
// 400 with per-rule messages; everything else is surfaced as a generic 500
// without leaking internal detail.
func writeError(w http.ResponseWriter, err error) {
	var de *dErrors.Error
	if errors.As(err, &de) {
		switch de.Code {
		case dErrors.CodeValidation:
			writeJSON(w, http.StatusBadRequest, ErrorResponse{
				Status:  "error",
				Message: msgValidationError,
				Errors:  de.Violations,
			})
			return
		case dErrors.CodeConflict:
			writeJSON(w, http.StatusBadRequest, ErrorResponse{
				Status:  "error",
				Message: msgValidationError,
				Errors:  []string{de.Message},
			})
			return
		}
	}
	writeJSON(w, http.StatusInternalServerError, ErrorResponse{
		Status:  "error",
		Message: msgInternalError,
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
