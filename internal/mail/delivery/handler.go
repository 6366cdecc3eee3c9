package delivery

import (
	"net/http"

	authdelivery "startupmail-backend/internal/auth/delivery"
	maildto "startupmail-backend/internal/mail/dto"
	"startupmail-backend/internal/mail/usecase"
	"startupmail-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type MailHandler struct {
	mailUsecase usecase.MailUsecase
}

func NewMailHandler(mailUsecase usecase.MailUsecase) *MailHandler {
	return &MailHandler{mailUsecase: mailUsecase}
}

func respondError(c *gin.Context, err error) {
	c.JSON(apperror.HTTPStatus(err), gin.H{"error": apperror.PublicMessage(err)})
}

func (h *MailHandler) ConnectAccount(c *gin.Context) {
	var req maildto.ConnectAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user := authdelivery.CurrentUser(c)
	account, err := h.mailUsecase.ConnectAccount(c.Request.Context(), user.ID, req.Provider, req.AuthCode)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, account)
}

func (h *MailHandler) ListAccounts(c *gin.Context) {
	user := authdelivery.CurrentUser(c)
	accounts, err := h.mailUsecase.ListAccounts(user.ID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, maildto.AccountsResponse{Accounts: accounts})
}

func (h *MailHandler) Inbox(c *gin.Context) {
	user := authdelivery.CurrentUser(c)
	emails, err := h.mailUsecase.Inbox(c.Request.Context(), user.ID, c.Query("account_id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, maildto.InboxResponse{Emails: emails})
}

func (h *MailHandler) SentEmails(c *gin.Context) {
	user := authdelivery.CurrentUser(c)
	emails, err := h.mailUsecase.SentEmails(user.ID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, maildto.InboxResponse{Emails: emails})
}

func (h *MailHandler) SendEmail(c *gin.Context) {
	var req maildto.SendEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user := authdelivery.CurrentUser(c)
	message, err := h.mailUsecase.SendEmail(c.Request.Context(), user.ID, c.Query("account_id"), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, maildto.SendEmailResponse{
		Message: "Email sent successfully",
		EmailID: message.ID,
	})
}

func (h *MailHandler) SaveDraft(c *gin.Context) {
	var req maildto.DraftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user := authdelivery.CurrentUser(c)
	draft, err := h.mailUsecase.SaveDraft(user.ID, c.Query("draft_id"), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, draft)
}

func (h *MailHandler) ListDrafts(c *gin.Context) {
	user := authdelivery.CurrentUser(c)
	drafts, err := h.mailUsecase.ListDrafts(user.ID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, maildto.DraftsResponse{Drafts: drafts})
}

func (h *MailHandler) DeleteDraft(c *gin.Context) {
	user := authdelivery.CurrentUser(c)
	if err := h.mailUsecase.DeleteDraft(user.ID, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "draft deleted"})
}

func (h *MailHandler) CreateTemplate(c *gin.Context) {
	var req maildto.TemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user := authdelivery.CurrentUser(c)
	template, err := h.mailUsecase.CreateTemplate(user.ID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, template)
}

func (h *MailHandler) ListTemplates(c *gin.Context) {
	user := authdelivery.CurrentUser(c)
	templates, err := h.mailUsecase.ListTemplates(user.ID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, maildto.TemplatesResponse{Templates: templates})
}

func (h *MailHandler) UpdateTemplate(c *gin.Context) {
	var req maildto.TemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user := authdelivery.CurrentUser(c)
	template, err := h.mailUsecase.UpdateTemplate(user.ID, c.Param("id"), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, template)
}

func (h *MailHandler) DeleteTemplate(c *gin.Context) {
	user := authdelivery.CurrentUser(c)
	if err := h.mailUsecase.DeleteTemplate(user.ID, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "template deleted"})
}

func (h *MailHandler) PredefinedTemplates(c *gin.Context) {
	c.JSON(http.StatusOK, maildto.TemplatesResponse{Templates: h.mailUsecase.PredefinedTemplates()})
}

func (h *MailHandler) CreateCampaign(c *gin.Context) {
	var req maildto.CampaignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user := authdelivery.CurrentUser(c)
	campaign, err := h.mailUsecase.CreateCampaign(user.ID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, campaign)
}

func (h *MailHandler) ListCampaigns(c *gin.Context) {
	user := authdelivery.CurrentUser(c)
	campaigns, err := h.mailUsecase.ListCampaigns(user.ID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, maildto.CampaignsResponse{Campaigns: campaigns})
}
