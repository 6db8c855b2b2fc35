package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	. "github.com/onsi/gomega"
	"github.com/stretchr/testify/suite"

	. "todohub/pkg/test"
	"todohub/pkg/test/factory"

	"todohub/internal/adapter/database/sqlite"
	"todohub/internal/adapter/database/sqlite/repository"
	"todohub/internal/core/model/response"
	"todohub/internal/core/port"
	"todohub/internal/core/service"
	"todohub/pkg/auth"
)

type AuthHandlerSuite struct {
	suite.Suite
	DB       *sqlite.DB
	Router   *gin.Engine
	UserRepo port.UserRepository
}

func (s *AuthHandlerSuite) SetupSuite() {
	s.T().Setenv("JWT_SECRET", "test-secret")
}

func (s *AuthHandlerSuite) SetupTest() {
	s.DB = InitTestDB()
	s.UserRepo = repository.NewUserRepository(s.DB)

	authHandler := NewAuthHandler(service.NewAuthService(s.UserRepo))

	gin.SetMode(gin.TestMode)

	s.Router = gin.New()
	s.Router.Use(gin.Recovery())
	s.Router.POST("/signup", authHandler.SignUp)
	s.Router.POST("/auth", authHandler.Login)
}

func (s *AuthHandlerSuite) TearDownTest() {
	s.DB.Close()
}

func TestAuthHandlerSuite(t *testing.T) {
	RegisterTestingT(t)

	suite.Run(t, new(AuthHandlerSuite))
}

func (s *AuthHandlerSuite) post(path string, body any) *httptest.ResponseRecorder {
	payload, _ := json.Marshal(body)

	req, _ := http.NewRequest("POST", path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	rr := httptest.NewRecorder()
	s.Router.ServeHTTP(rr, req)

	return rr
}

func (s *AuthHandlerSuite) TestSignUp() {
	rr := s.post("/signup", map[string]any{
		"username": "alice",
		"email":    "alice@example.com",
		"password": "supersecret",
	})

	Expect(rr.Code).To(Equal(http.StatusCreated))

	var envelope struct {
		Data response.UserView `json:"data"`
	}
	Expect(json.Unmarshal(rr.Body.Bytes(), &envelope)).To(Succeed())
	Expect(envelope.Data.Username).To(Equal("alice"))
	Expect(envelope.Data.IsActive).To(BeTrue())
}

func (s *AuthHandlerSuite) TestSignUp_ShortPassword() {
	rr := s.post("/signup", map[string]any{
		"username": "alice",
		"email":    "alice@example.com",
		"password": "short",
	})

	Expect(rr.Code).To(Equal(http.StatusBadRequest))

	var errResp response.ErrorResponse
	Expect(json.Unmarshal(rr.Body.Bytes(), &errResp)).To(Succeed())
	Expect(errResp.Error.Code).To(Equal("VALIDATION_ERROR"))
}

func (s *AuthHandlerSuite) TestSignUp_DuplicateUsername() {
	existing, err := s.UserRepo.Create(ctx, factory.NewUser())
	Expect(err).To(BeNil())

	rr := s.post("/signup", map[string]any{
		"username": existing.Username,
		"email":    "other@example.com",
		"password": "supersecret",
	})

	Expect(rr.Code).To(Equal(http.StatusConflict))
}

func (s *AuthHandlerSuite) TestLogin() {
	s.post("/signup", map[string]any{
		"username": "bob",
		"email":    "bob@example.com",
		"password": "supersecret",
	})

	rr := s.post("/auth", map[string]any{
		"username": "bob",
		"password": "supersecret",
	})

	Expect(rr.Code).To(Equal(http.StatusOK))

	var envelope struct {
		Data response.AuthResponse `json:"data"`
	}
	Expect(json.Unmarshal(rr.Body.Bytes(), &envelope)).To(Succeed())
	Expect(envelope.Data.Token).NotTo(BeEmpty())
	Expect(envelope.Data.User.Username).To(Equal("bob"))

	userID, err := auth.VerifyJwtToken(envelope.Data.Token)

	Expect(err).To(BeNil())
	Expect(userID).To(Equal(envelope.Data.User.ID))
}

func (s *AuthHandlerSuite) TestLogin_WrongPassword() {
	s.post("/signup", map[string]any{
		"username": "carol",
		"email":    "carol@example.com",
		"password": "supersecret",
	})

	rr := s.post("/auth", map[string]any{
		"username": "carol",
		"password": "not-it",
	})

	Expect(rr.Code).To(Equal(http.StatusUnauthorized))
}
