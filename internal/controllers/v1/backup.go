package v1

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ledgerline/backend/internal/backup"
	"github.com/ledgerline/backend/internal/httputil"
	"github.com/ledgerline/backend/internal/models"
)

// PassphraseHeader is the request header holding the backup passphrase.
const PassphraseHeader = "X-Backup-Passphrase"

var (
	backendVersion string

	errNoBackupFile = errors.New("you must send a backup file as request body or as form file with the name 'file'")
)

// RegisterBackupRoutes registers the routes for backups with
// the RouterGroup that is passed.
func RegisterBackupRoutes(r *gin.RouterGroup, version string) {
	backendVersion = version

	{
		r.OPTIONS("", OptionsBackup)
		r.GET("", GetBackup)
		r.POST("", RestoreBackup)
	}
}

type BackupQuery struct {
	Include []string `form:"include"` // Glob patterns for the resource types to export
}

type RestoreQuery struct {
	Confirm string `form:"confirm"` // Must be 'yes-replace-everything'
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Backup
// @Success		204
// @Router			/v1/backup [options]
func OptionsBackup(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Create backup
// @Description	Exports all resources. With a passphrase in the X-Backup-Passphrase header, the backup is encrypted.
// @Tags			Backup
// @Produce		json
// @Success		200					{object}	backup.Backup
// @Failure		400					{object}	httpError
// @Failure		500					{object}	httpError
// @Param			include				query		[]string	false	"Glob patterns for resource types to export, e.g. 'Month*'"	collectionFormat(multi)
// @Param			X-Backup-Passphrase	header		string		false	"Passphrase to encrypt the backup with"
// @Router			/v1/backup [get]
func GetBackup(c *gin.Context) {
	var query BackupQuery
	err := c.ShouldBindQuery(&query)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	b, err := backup.Create(backendVersion, query.Include)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	data, err := backup.Marshal(b, c.GetHeader(PassphraseHeader))
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	filename := fmt.Sprintf("ledgerline-backup-%s.json", b.CreationTime.UTC().Format(time.DateOnly))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/json", data)
}

// @Summary		Restore backup
// @Description	Replaces all resources with the content of a backup. The backup is sent as request body or as form file 'file'.
// @Tags			Backup
// @Accept			json
// @Accept			multipart/form-data
// @Success		204
// @Failure		400					{object}	httpError
// @Failure		500					{object}	httpError
// @Param			confirm				query		string	true	"Confirmation to replace all resources. Must have the value 'yes-replace-everything'"
// @Param			X-Backup-Passphrase	header		string	false	"Passphrase of encrypted backups"
// @Router			/v1/backup [post]
func RestoreBackup(c *gin.Context) {
	var query RestoreQuery
	err := c.ShouldBindQuery(&query)
	if err != nil || query.Confirm != "yes-replace-everything" {
		c.JSON(http.StatusBadRequest, httpError{
			Error: errRestoreConfirmation.Error(),
		})
		return
	}

	data, err := backupFile(c)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	b, err := backup.Parse(data, c.GetHeader(PassphraseHeader))
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = backup.Restore(models.DB, b)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}

// backupFile returns the uploaded backup, either from the form file or
// the request body.
func backupFile(c *gin.Context) ([]byte, error) {
	var r io.Reader = c.Request.Body

	if strings.HasPrefix(c.ContentType(), "multipart/form-data") {
		formFile, err := c.FormFile("file")
		if formFile == nil {
			return nil, errNoBackupFile
		}

		if err != nil {
			return nil, err
		}

		f, err := formFile.Open()
		if err != nil {
			return nil, err
		}
		defer f.Close()

		r = f
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	if len(data) == 0 {
		return nil, errNoBackupFile
	}

	return data, nil
}
