package handler

import (
	"io"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"memberlist/internal/member/handler/mocks"
	"memberlist/internal/member/models"
	"memberlist/internal/member/service"
	"memberlist/internal/member/validate"
	dErrors "memberlist/pkg/domain-errors"
	"memberlist/pkg/testutil"
)

type MemberHandlerSuite struct {
	suite.Suite
}

func TestMemberHandlerSuite(t *testing.T) {
	suite.Run(t, new(MemberHandlerSuite))
}

func newTestHandler(t *testing.T) (http.Handler, *mocks.MockService) {
	t.Helper()
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)
	mockService := mocks.NewMockService(ctrl)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	h := New(mockService, logger, nil)
	r := chi.NewRouter()
	h.Register(r)
	return r, mockService
}

func strPtr(s string) *string {
	return &s
}

func testMember(id int64, email string, createdAt time.Time) *models.Member {
	return &models.Member{
		ID:        id,
		Name:      "山田太郎",
		NameKana:  "やまだたろう",
		Email:     email,
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	}
}

func (s *MemberHandlerSuite) TestListMembers() {
	router, mockService := newTestHandler(s.T())

	base := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	mockService.EXPECT().ListMembers(gomock.Any()).Return([]*models.Member{
		testMember(2, "second@example.com", base.Add(time.Hour)),
		testMember(1, "first@example.com", base),
	}, nil)

	rr := testutil.DoRequest(router, testutil.NewRequest(s.T(), http.MethodGet, "/api/members"))

	s.Equal(http.StatusOK, rr.Code)
	resp := testutil.UnmarshalResponse[struct {
		Status  string       `json:"status"`
		Message string       `json:"message"`
		Data    []MemberView `json:"data"`
	}](s.T(), rr)
	s.Equal("success", resp.Status)
	s.Equal("メンバー一覧の取得が完了しました", resp.Message)
	s.Require().Len(resp.Data, 2)
	s.Equal(int64(2), resp.Data[0].ID)
	s.Equal(int64(1), resp.Data[1].ID)
	s.Nil(resp.Data[0].Position)
}

func (s *MemberHandlerSuite) TestListMembersEmpty() {
	router, mockService := newTestHandler(s.T())
	mockService.EXPECT().ListMembers(gomock.Any()).Return(nil, nil)

	rr := testutil.DoRequest(router, testutil.NewRequest(s.T(), http.MethodGet, "/api/members"))

	s.Equal(http.StatusOK, rr.Code)
	// An empty roster serializes as an empty array, not null.
	s.Contains(rr.Body.String(), `"data":[]`)
}

func (s *MemberHandlerSuite) TestListMembersStorageFailure() {
	router, mockService := newTestHandler(s.T())
	mockService.EXPECT().ListMembers(gomock.Any()).
		Return(nil, dErrors.New(dErrors.CodeInternal, "failed to list members"))

	rr := testutil.DoRequest(router, testutil.NewRequest(s.T(), http.MethodGet, "/api/members"))

	s.Equal(http.StatusInternalServerError, rr.Code)
	resp := testutil.UnmarshalResponse[ErrorResponse](s.T(), rr)
	s.Equal("error", resp.Status)
	s.Equal("サーバーエラーが発生しました", resp.Message)
	s.Nil(resp.Errors)
}

func (s *MemberHandlerSuite) TestCreateMember() {
	router, mockService := newTestHandler(s.T())

	created := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	member := testMember(1, "yamada@example.com", created)
	member.Position = strPtr("エンジニア")

	mockService.EXPECT().RegisterMember(gomock.Any(), service.RegisterMemberParams{
		Name:     "山田太郎",
		NameKana: "やまだたろう",
		Email:    "yamada@example.com",
		Position: strPtr("エンジニア"),
	}).Return(member, nil)

	req := testutil.NewJSONRequest(s.T(), http.MethodPost, "/api/members", CreateMemberRequest{
		Name:     "山田太郎",
		NameKana: "やまだたろう",
		Email:    "yamada@example.com",
		Position: strPtr("エンジニア"),
	})
	rr := testutil.DoRequest(router, req)

	s.Equal(http.StatusCreated, rr.Code)
	resp := testutil.UnmarshalResponse[struct {
		Status  string     `json:"status"`
		Message string     `json:"message"`
		Data    MemberView `json:"data"`
	}](s.T(), rr)
	s.Equal("success", resp.Status)
	s.Equal("登録が完了しました", resp.Message)
	s.Equal(int64(1), resp.Data.ID)
	s.Equal("やまだたろう", resp.Data.NameKana)
	s.Require().NotNil(resp.Data.Position)
	s.Equal("エンジニア", *resp.Data.Position)
	s.Nil(resp.Data.Location)
}

func (s *MemberHandlerSuite) TestCreateMemberSerializesAbsentOptionalsAsNull() {
	router, mockService := newTestHandler(s.T())

	member := testMember(1, "yamada@example.com", time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC))
	mockService.EXPECT().RegisterMember(gomock.Any(), gomock.Any()).Return(member, nil)

	req := testutil.NewJSONRequest(s.T(), http.MethodPost, "/api/members", CreateMemberRequest{
		Name:     "山田太郎",
		NameKana: "やまだたろう",
		Email:    "yamada@example.com",
	})
	rr := testutil.DoRequest(router, req)

	s.Equal(http.StatusCreated, rr.Code)
	body := rr.Body.String()
	s.Contains(body, `"position":null`)
	s.Contains(body, `"location":null`)
	s.Contains(body, `"profileImageUrl":null`)
	s.Contains(body, `"selfIntroduction":null`)
}

func (s *MemberHandlerSuite) TestCreateMemberValidationFailure() {
	router, mockService := newTestHandler(s.T())

	mockService.EXPECT().RegisterMember(gomock.Any(), gomock.Any()).
		Return(nil, dErrors.NewValidation([]string{
			validate.MsgNameRequired,
			validate.MsgNameKanaNotHiragana,
		}))

	req := testutil.NewJSONRequest(s.T(), http.MethodPost, "/api/members", CreateMemberRequest{
		Name:     "",
		NameKana: "ヤマダ",
		Email:    "yamada@example.com",
	})
	rr := testutil.DoRequest(router, req)

	s.Equal(http.StatusBadRequest, rr.Code)
	resp := testutil.UnmarshalResponse[ErrorResponse](s.T(), rr)
	s.Equal("error", resp.Status)
	s.Equal("バリデーションエラーです", resp.Message)
	s.Equal([]string{validate.MsgNameRequired, validate.MsgNameKanaNotHiragana}, resp.Errors)
}

func (s *MemberHandlerSuite) TestCreateMemberDuplicateEmail() {
	router, mockService := newTestHandler(s.T())

	mockService.EXPECT().RegisterMember(gomock.Any(), gomock.Any()).
		Return(nil, dErrors.New(dErrors.CodeConflict, "メールアドレスが既に登録されています: yamada@example.com"))

	req := testutil.NewJSONRequest(s.T(), http.MethodPost, "/api/members", CreateMemberRequest{
		Name:     "山田太郎",
		NameKana: "やまだたろう",
		Email:    "yamada@example.com",
	})
	rr := testutil.DoRequest(router, req)

	s.Equal(http.StatusBadRequest, rr.Code)
	resp := testutil.UnmarshalResponse[ErrorResponse](s.T(), rr)
	s.Equal("バリデーションエラーです", resp.Message)
	s.Require().Len(resp.Errors, 1)
	s.Equal("メールアドレスが既に登録されています: yamada@example.com", resp.Errors[0])
}

func (s *MemberHandlerSuite) TestCreateMemberMalformedBody() {
	router, mockService := newTestHandler(s.T())
	// The service is never reached for an unreadable body.
	mockService.EXPECT().RegisterMember(gomock.Any(), gomock.Any()).Times(0)

	req := testutil.NewRequestWithBody(s.T(), http.MethodPost, "/api/members", `{"name": `)
	rr := testutil.DoRequest(router, req)

	s.Equal(http.StatusInternalServerError, rr.Code)
	resp := testutil.UnmarshalResponse[ErrorResponse](s.T(), rr)
	s.Equal("error", resp.Status)
	s.Equal("サーバーエラーが発生しました", resp.Message)
	s.Nil(resp.Errors)
}

func (s *MemberHandlerSuite) TestMethodNotAllowed() {
	router, _ := newTestHandler(s.T())

	rr := testutil.DoRequest(router, testutil.NewRequest(s.T(), http.MethodDelete, "/api/members"))
	s.Equal(http.StatusMethodNotAllowed, rr.Code)
}
