package handler

import "memberlist/internal/member/service"

// CreateMemberRequest is the POST /api/members body. A JSON null on a
// required field decodes to the empty string and fails that field's required
// rule rather than producing a distinct error kind.
type CreateMemberRequest struct {
	Name             string  `json:"name"`
	NameKana         string  `json:"nameKana"`
	Email            string  `json:"email"`
	Position         *string `json:"position"`
	Location         *string `json:"location"`
	ProfileImageURL  *string `json:"profileImageUrl"`
	SelfIntroduction *string `json:"selfIntroduction"`
}

func (r CreateMemberRequest) params() service.RegisterMemberParams {
	return service.RegisterMemberParams{
		Name:             r.Name,
		NameKana:         r.NameKana,
		Email:            r.Email,
		Position:         r.Position,
		Location:         r.Location,
		ProfileImageURL:  r.ProfileImageURL,
		SelfIntroduction: r.SelfIntroduction,
	}
}
