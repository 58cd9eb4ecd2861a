package handler

//go:generate mockgen -source=handler.go -destination=mocks/mocks.go -package=mocks Service

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/mock/gomock"

	"github.com/stretchr/testify/suite"

	"certledger/internal/registry/handler/mocks"
	"certledger/internal/registry/models"
	dErrors "certledger/pkg/domain-errors"
	"certledger/pkg/domain"
	"certledger/pkg/requestcontext"
)

const caller = domain.Address("0xcaller")

type HandlerSuite struct {
	suite.Suite
	router  *chi.Mux
	service *mocks.MockService
}

func TestHandlerSuite(t *testing.T) {
	suite.Run(t, new(HandlerSuite))
}

func (s *HandlerSuite) SetupTest() {
	ctrl := gomock.NewController(s.T())
	s.T().Cleanup(ctrl.Finish)
	s.service = mocks.NewMockService(ctrl)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s.router = chi.NewRouter()
	New(s.service, logger).Register(s.router)
}

// do performs an authenticated request against the handler router.
func (s *HandlerSuite) do(method, path string, body any) *httptest.ResponseRecorder {
	return s.doAs(caller, method, path, body)
}

func (s *HandlerSuite) doAs(as domain.Address, method, path string, body any) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		s.Require().NoError(err)
		reader = bytes.NewReader(payload)
	}
	req := httptest.NewRequest(method, path, reader)
	if !as.IsZero() {
		req = req.WithContext(requestcontext.WithCaller(req.Context(), as))
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *HandlerSuite) decode(w *httptest.ResponseRecorder) map[string]any {
	var resp map[string]any
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func (s *HandlerSuite) TestHandleIssue() {
	s.Run("success returns the new certificate id", func() {
		s.service.EXPECT().
			IssueCertificate(gomock.Any(), caller, domain.Address("0xstudent"), domain.CourseID(1), uint64(85), "ipfs://X").
			Return(domain.CertificateID(1), nil)

		w := s.do(http.MethodPost, "/certificates", IssueRequest{
			Student: "0xstudent", CourseID: 1, Grade: 85, ArtifactRef: "ipfs://X",
		})
		s.Equal(http.StatusCreated, w.Code)
		s.Equal(float64(1), s.decode(w)["certificate_id"])
	})

	s.Run("missing student rejected before the service is called", func() {
		w := s.do(http.MethodPost, "/certificates", IssueRequest{CourseID: 1, Grade: 85, ArtifactRef: "ipfs://X"})
		s.Equal(http.StatusBadRequest, w.Code)
	})

	s.Run("malformed body rejected", func() {
		req := httptest.NewRequest(http.MethodPost, "/certificates", bytes.NewReader([]byte("{")))
		req = req.WithContext(requestcontext.WithCaller(req.Context(), caller))
		w := httptest.NewRecorder()
		s.router.ServeHTTP(w, req)
		s.Equal(http.StatusBadRequest, w.Code)
	})

	s.Run("unauthenticated request rejected", func() {
		w := s.doAs(domain.ZeroAddress, http.MethodPost, "/certificates", IssueRequest{
			Student: "0xstudent", CourseID: 1, Grade: 85, ArtifactRef: "ipfs://X",
		})
		s.Equal(http.StatusUnauthorized, w.Code)
	})

	s.Run("capability rejection maps to 403", func() {
		s.service.EXPECT().
			IssueCertificate(gomock.Any(), caller, gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(domain.CertificateID(0), dErrors.New(dErrors.CodeUnauthorized, "caller is not an authorized institution"))

		w := s.do(http.MethodPost, "/certificates", IssueRequest{
			Student: "0xstudent", CourseID: 1, Grade: 85, ArtifactRef: "ipfs://X",
		})
		s.Equal(http.StatusForbidden, w.Code)
		s.Equal("unauthorized", s.decode(w)["error"])
	})
}

func (s *HandlerSuite) TestHandleGet() {
	s.Run("success returns the full record", func() {
		s.service.EXPECT().GetCertificate(gomock.Any(), domain.CertificateID(7)).Return(&models.Certificate{
			ID:             7,
			Owner:          "0xstudent",
			Issuer:         "0xuni",
			CourseID:       2,
			CompletionDate: time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC),
			Grade:          92,
			IsVerified:     true,
			ArtifactRef:    "ipfs://X",
			Version:        1,
			Transferable:   true,
		}, nil)

		w := s.do(http.MethodGet, "/certificates/7", nil)
		s.Equal(http.StatusOK, w.Code)
		resp := s.decode(w)
		s.Equal(float64(7), resp["id"])
		s.Equal("0xstudent", resp["owner"])
		s.Equal(true, resp["is_verified"])
	})

	s.Run("unknown id maps to 404", func() {
		s.service.EXPECT().GetCertificate(gomock.Any(), domain.CertificateID(404)).
			Return(nil, dErrors.New(dErrors.CodeNotFound, "certificate not found"))

		w := s.do(http.MethodGet, "/certificates/404", nil)
		s.Equal(http.StatusNotFound, w.Code)
	})

	s.Run("non-numeric id rejected", func() {
		w := s.do(http.MethodGet, "/certificates/abc", nil)
		s.Equal(http.StatusBadRequest, w.Code)
	})

	s.Run("zero id rejected", func() {
		w := s.do(http.MethodGet, "/certificates/0", nil)
		s.Equal(http.StatusBadRequest, w.Code)
	})
}

func (s *HandlerSuite) TestHandleVerify() {
	s.Run("success", func() {
		s.service.EXPECT().VerifyCertificate(gomock.Any(), caller, domain.CertificateID(1)).Return(nil)
		w := s.do(http.MethodPost, "/certificates/1/verify", nil)
		s.Equal(http.StatusOK, w.Code)
		s.Equal("verified", s.decode(w)["status"])
	})

	s.Run("double verification maps to 409", func() {
		s.service.EXPECT().VerifyCertificate(gomock.Any(), caller, domain.CertificateID(1)).
			Return(dErrors.New(dErrors.CodeAlreadyVerified, "certificate already verified"))
		w := s.do(http.MethodPost, "/certificates/1/verify", nil)
		s.Equal(http.StatusConflict, w.Code)
		s.Equal("already_verified", s.decode(w)["error"])
	})
}

func (s *HandlerSuite) TestHandleUpdate() {
	s.service.EXPECT().UpdateCertificate(gomock.Any(), caller, domain.CertificateID(1), uint64(90), "regrade").Return(nil)
	w := s.do(http.MethodPost, "/certificates/1/update", UpdateRequest{Grade: 90, Reason: "regrade"})
	s.Equal(http.StatusOK, w.Code)
	s.Equal("updated", s.decode(w)["status"])
}

func (s *HandlerSuite) TestHandleRevoke() {
	s.Run("success", func() {
		s.service.EXPECT().RevokeCertificate(gomock.Any(), caller, domain.CertificateID(1), "misconduct").Return(nil)
		w := s.do(http.MethodPost, "/certificates/1/revoke", RevokeRequest{Reason: "misconduct"})
		s.Equal(http.StatusOK, w.Code)
	})

	s.Run("already revoked maps to 409", func() {
		s.service.EXPECT().RevokeCertificate(gomock.Any(), caller, domain.CertificateID(1), "again").
			Return(dErrors.New(dErrors.CodeAlreadyRevoked, "certificate already revoked"))
		w := s.do(http.MethodPost, "/certificates/1/revoke", RevokeRequest{Reason: "again"})
		s.Equal(http.StatusConflict, w.Code)
	})
}

func (s *HandlerSuite) TestHandleTransfer() {
	s.Run("success", func() {
		s.service.EXPECT().TransferOwnership(gomock.Any(), caller, domain.CertificateID(1), domain.Address("0xother")).Return(nil)
		w := s.do(http.MethodPost, "/certificates/1/transfer", TransferRequest{NewOwner: "0xother"})
		s.Equal(http.StatusOK, w.Code)
	})

	s.Run("zero new owner rejected before the service is called", func() {
		w := s.do(http.MethodPost, "/certificates/1/transfer", TransferRequest{NewOwner: "0x0000"})
		s.Equal(http.StatusBadRequest, w.Code)
	})

	s.Run("disabled transfers map to 409", func() {
		s.service.EXPECT().TransferOwnership(gomock.Any(), caller, domain.CertificateID(1), domain.Address("0xother")).
			Return(dErrors.New(dErrors.CodeTransfersDisabled, "transfers are disabled"))
		w := s.do(http.MethodPost, "/certificates/1/transfer", TransferRequest{NewOwner: "0xother"})
		s.Equal(http.StatusConflict, w.Code)
	})
}

func (s *HandlerSuite) TestHandleSetTransferable() {
	enabled := false
	s.Run("success", func() {
		s.service.EXPECT().SetCertificateTransferable(gomock.Any(), caller, domain.CertificateID(1), false).Return(nil)
		w := s.do(http.MethodPut, "/certificates/1/transferable", TransferableRequest{Transferable: &enabled})
		s.Equal(http.StatusOK, w.Code)
	})

	s.Run("omitted flag rejected", func() {
		w := s.do(http.MethodPut, "/certificates/1/transferable", map[string]any{})
		s.Equal(http.StatusBadRequest, w.Code)
	})
}

func (s *HandlerSuite) TestTransferPolicy() {
	s.Run("read", func() {
		s.service.EXPECT().TransferEnabled(gomock.Any()).Return(true, nil)
		w := s.do(http.MethodGet, "/policy/transfers", nil)
		s.Equal(http.StatusOK, w.Code)
		s.Equal(true, s.decode(w)["enabled"])
	})

	s.Run("write requires admin", func() {
		disabled := false
		s.service.EXPECT().SetTransferEnabled(gomock.Any(), caller, false).
			Return(dErrors.New(dErrors.CodeUnauthorized, "caller is not the admin"))
		w := s.do(http.MethodPut, "/policy/transfers", TransferPolicyRequest{Enabled: &disabled})
		s.Equal(http.StatusForbidden, w.Code)
	})
}

func (s *HandlerSuite) TestInstitutions() {
	s.Run("authorize", func() {
		s.service.EXPECT().AuthorizeInstitution(gomock.Any(), caller, domain.Address("0xuni")).Return(nil)
		w := s.do(http.MethodPost, "/institutions", InstitutionRequest{Address: "0xuni"})
		s.Equal(http.StatusCreated, w.Code)
	})

	s.Run("duplicate authorization maps to 409", func() {
		s.service.EXPECT().AuthorizeInstitution(gomock.Any(), caller, domain.Address("0xuni")).
			Return(dErrors.New(dErrors.CodeAlreadyAuthorized, "institution already authorized"))
		w := s.do(http.MethodPost, "/institutions", InstitutionRequest{Address: "0xuni"})
		s.Equal(http.StatusConflict, w.Code)
	})

	s.Run("revoke", func() {
		s.service.EXPECT().RevokeInstitution(gomock.Any(), caller, domain.Address("0xuni")).Return(nil)
		w := s.do(http.MethodDelete, "/institutions/0xuni", nil)
		s.Equal(http.StatusOK, w.Code)
	})

	s.Run("membership read", func() {
		s.service.EXPECT().IsInstitution(gomock.Any(), domain.Address("0xuni")).Return(true, nil)
		w := s.do(http.MethodGet, "/institutions/0xuni", nil)
		s.Equal(http.StatusOK, w.Code)
		s.Equal(true, s.decode(w)["authorized"])
	})
}

func (s *HandlerSuite) TestCourses() {
	s.Run("set", func() {
		s.service.EXPECT().SetCourseName(gomock.Any(), caller, domain.CourseID(3), "Cryptography").Return(nil)
		w := s.do(http.MethodPut, "/courses/3", CourseRequest{Name: "Cryptography"})
		s.Equal(http.StatusOK, w.Code)
	})

	s.Run("empty name rejected before the service is called", func() {
		w := s.do(http.MethodPut, "/courses/3", CourseRequest{Name: "   "})
		s.Equal(http.StatusBadRequest, w.Code)
	})

	s.Run("unknown course reads back empty", func() {
		s.service.EXPECT().GetCourseName(gomock.Any(), domain.CourseID(999)).Return("", nil)
		w := s.do(http.MethodGet, "/courses/999", nil)
		s.Equal(http.StatusOK, w.Code)
		s.Equal("", s.decode(w)["name"])
	})
}
