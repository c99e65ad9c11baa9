package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "hazina/internal/errors"
	"hazina/internal/services"
)

// BackupHandler handles JSON export and import of a user's records.
type BackupHandler struct {
	backupService services.BackupServicer
	auditService  services.AuditServicer
}

// NewBackupHandler creates a new BackupHandler.
func NewBackupHandler(backupService services.BackupServicer, auditService services.AuditServicer) *BackupHandler {
	return &BackupHandler{backupService: backupService, auditService: auditService}
}

// Export downloads the user's full record set as JSON.
// @Summary     Export backup
// @Description Download the user's full record set as a portable JSON document
// @Tags        backup
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} MessageResponse "Backup document"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /backup/export [get]
func (h *BackupHandler) Export(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	doc, err := h.backupService.Export(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "EXPORT_BACKUP", "backup", userID, c.ClientIP(), nil)

	c.Header("Content-Disposition", `attachment; filename="hazina-backup.json"`)
	c.JSON(http.StatusOK, doc)
}

// Import replaces the user's records with an uploaded backup document.
// @Summary     Import backup
// @Description Replace the user's records with the uploaded backup document
// @Tags        backup
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body services.BackupDocument true "Backup document"
// @Success     200 {object} MessageResponse "Import complete"
// @Failure     400 {object} ErrorResponse "Malformed backup"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /backup/import [post]
func (h *BackupHandler) Import(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var doc services.BackupDocument
	if err := c.ShouldBindJSON(&doc); err != nil {
		respondWithError(c, apperrors.Wrap(apperrors.ErrInvalidBackup, err))
		return
	}

	if err := h.backupService.Import(userID, &doc); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "IMPORT_BACKUP", "backup", userID, c.ClientIP(),
		map[string]interface{}{"transactions": len(doc.Transactions), "categories": len(doc.Categories)})

	c.JSON(http.StatusOK, gin.H{"message": "Backup imported successfully"})
}
