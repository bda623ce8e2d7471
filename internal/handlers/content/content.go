package content

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/settleflow/settleflow/internal/domain"
	"github.com/settleflow/settleflow/internal/dto"
	contentservice "github.com/settleflow/settleflow/internal/service/contentservice"
	"github.com/settleflow/settleflow/pkg/auth"
	"github.com/settleflow/settleflow/pkg/utils"
)

type Service interface {
	Purchase(ctx context.Context, buyerID int, in contentservice.PurchaseInput) (*domain.ContentLicense, error)
	ListByBuyer(ctx context.Context, buyerID int) ([]domain.ContentLicense, error)
	Download(ctx context.Context, buyerID, id int) (*domain.ContentLicense, error)
}

type ContentHandler struct {
	contentService Service
}

func New(contentService Service) *ContentHandler {
	return &ContentHandler{
		contentService: contentService,
	}
}

// Purchase godoc
//
//	@Summary		Purchase a content license
//	@Description	Buy digital content. Free content activates immediately; paid content stays pending until the payment settles.
//	@Tags			Content
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.PurchaseContentRequestDTO	true	"Purchase payload"
//	@Success		201		{object}	dto.ContentLicenseResponseDTO	"Created license"
//	@Failure		400		{object}	utils.Response					"Invalid request body"
//	@Failure		401		{object}	utils.Response					"User not authorized"
//	@Failure		422		{object}	utils.Response					"Validation failed"
//	@Failure		500		{object}	utils.Response					"Internal server error"
//	@Router			/api/content/purchases [post]
func (h *ContentHandler) Purchase(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(int)

	var req dto.PurchaseContentRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := dto.Validate(req); err != nil {
		utils.RespondWithError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	lic, err := h.contentService.Purchase(r.Context(), userID, contentservice.PurchaseInput{
		AuthorID:      req.AuthorID,
		ContentID:     req.ContentID,
		Amount:        req.Amount,
		Currency:      req.Currency,
		Access:        domain.AccessKind(req.Access),
		Window:        time.Duration(req.WindowSecs) * time.Second,
		DownloadQuota: req.DownloadQuota,
	})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, toDTO(lic))
}

// GetLicenses godoc
//
//	@Summary		List own content licenses
//	@Description	List licenses held by the authenticated buyer.
//	@Tags			Content
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{array}		dto.ContentLicenseResponseDTO	"Licenses"
//	@Success		204	{object}	utils.Response					"No licenses"
//	@Failure		401	{object}	utils.Response					"User not authorized"
//	@Failure		500	{object}	utils.Response					"Internal server error"
//	@Router			/api/content/purchases [get]
func (h *ContentHandler) GetLicenses(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(int)

	lics, err := h.contentService.ListByBuyer(r.Context(), userID)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch licenses")
		return
	}
	if len(lics) == 0 {
		utils.RespondWithError(w, http.StatusNoContent, "Licenses not found")
		return
	}

	response := make([]dto.ContentLicenseResponseDTO, len(lics))
	for i := range lics {
		response[i] = toDTO(&lics[i])
	}
	utils.RespondWithJSON(w, http.StatusOK, response)
}

// Download godoc
//
//	@Summary		Record a download against a license
//	@Description	Consume one download from the license quota. Expired windows and exhausted quotas are rejected.
//	@Tags			Content
//	@Security		BearerAuth
//	@Produce		json
//	@Param			id	path		int								true	"License ID"
//	@Success		200	{object}	dto.ContentLicenseResponseDTO	"License after the download"
//	@Failure		400	{object}	utils.Response					"Invalid license id"
//	@Failure		401	{object}	utils.Response					"User not authorized"
//	@Failure		403	{object}	utils.Response					"Not the license holder"
//	@Failure		404	{object}	utils.Response					"License not found"
//	@Failure		409	{object}	utils.Response					"License not active"
//	@Failure		410	{object}	utils.Response					"Access window expired"
//	@Failure		429	{object}	utils.Response					"Download quota exhausted"
//	@Failure		500	{object}	utils.Response					"Internal server error"
//	@Router			/api/content/purchases/{id}/download [post]
func (h *ContentHandler) Download(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(int)

	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid license id")
		return
	}

	lic, err := h.contentService.Download(r.Context(), userID, id)
	if err != nil {
		switch {
		case errors.Is(err, contentservice.ErrLicenseNotFound):
			utils.RespondWithError(w, http.StatusNotFound, err.Error())
		case errors.Is(err, contentservice.ErrNotLicenseHolder):
			utils.RespondWithError(w, http.StatusForbidden, err.Error())
		case errors.Is(err, contentservice.ErrLicenseExpired):
			utils.RespondWithError(w, http.StatusGone, err.Error())
		case errors.Is(err, contentservice.ErrLicenseNotActive):
			utils.RespondWithError(w, http.StatusConflict, err.Error())
		case errors.Is(err, contentservice.ErrQuotaExhausted):
			utils.RespondWithError(w, http.StatusTooManyRequests, err.Error())
		default:
			utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, toDTO(lic))
}

func toDTO(cl *domain.ContentLicense) dto.ContentLicenseResponseDTO {
	return dto.ContentLicenseResponseDTO{
		ID:            cl.ID,
		AuthorID:      cl.AuthorID,
		ContentID:     cl.ContentID,
		Amount:        cl.Amount,
		Currency:      cl.Currency,
		Status:        string(cl.Status),
		Access:        string(cl.Access),
		ExpiresAt:     cl.ExpiresAt,
		DownloadsLeft: cl.DownloadsLeft,
		PaymentID:     cl.PaymentID,
		CreatedAt:     cl.CreatedAt,
	}
}
