package handler

import (
	"fmt"
	"net/http"
	"path"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"

	"staybook/model"
)

const maxImageSize = 10 << 20

func fileExtentionFromFileName(fileName string) (string, error) {
	ext := path.Ext(fileName)
	if ext == "" || ext == "." {
		return "", fmt.Errorf("no extention found")
	}
	return strings.ToLower(ext[1:]), nil
}

func (h *Handler) CreateFiles(c echo.Context) error {
	reqUser := authUser(c)

	if h.Files == nil {
		return &echo.HTTPError{Code: http.StatusServiceUnavailable, Message: "File uploads are not configured."}
	}

	// Multipart form
	form, err := c.MultipartForm()
	if err != nil {
		return &echo.HTTPError{Code: http.StatusBadRequest, Message: "Failed to parse multipart form."}
	}
	files := form.File["files"]
	if len(files) == 0 {
		return &echo.HTTPError{Code: http.StatusBadRequest, Message: "No files provided."}
	}

	dbFiles := []model.File{}

	for _, file := range files {
		mime := file.Header.Get(echo.HeaderContentType)
		if !strings.HasPrefix(mime, "image/") {
			return &echo.HTTPError{Code: http.StatusBadRequest, Message: fmt.Sprintf("%s is not an image.", file.Filename)}
		}
		if file.Size > maxImageSize {
			return &echo.HTTPError{Code: http.StatusRequestEntityTooLarge, Message: fmt.Sprintf("%s is too large.", file.Filename)}
		}

		// Assemble new file DB record
		dbFile := model.File{ID: uuid.NewString()}

		newFilename := dbFile.ID
		if fileExtention, err := fileExtentionFromFileName(file.Filename); err == nil {
			newFilename = fmt.Sprintf("%s.%s", dbFile.ID, fileExtention)
		}

		dbFile.Title = file.Filename
		dbFile.Path = "listings/" + newFilename
		dbFile.Mime = mime
		dbFile.Size = file.Size
		dbFile.CreatedByID = reqUser.ID
		dbFile.IsProvisional = true

		src, err := file.Open()
		if err != nil {
			return &echo.HTTPError{Code: http.StatusBadRequest, Message: "Failed to read upload."}
		}

		location, err := h.Files.Upload(c.Request().Context(), dbFile.Path, src, mime)
		src.Close()
		if err != nil {
			log.Errorf("upload %s: %v", dbFile.Path, err)
			return &echo.HTTPError{Code: http.StatusInternalServerError, Message: "Failed to upload file."}
		}

		// Save file to DB
		if err := h.DB.Create(&dbFile).Error; err != nil {
			log.Errorf("save file %s: %v", dbFile.ID, err)
			return &echo.HTTPError{Code: http.StatusInternalServerError, Message: "Failed to save file to DB"}
		}

		log.Infof("File uploaded to %s", location)
		dbFiles = append(dbFiles, dbFile)
	}

	return c.JSON(http.StatusCreated, struct {
		Files []any `json:"files"`
	}{Files: responseArrFormatter(dbFiles, reqUser.Roles)})
}

func (h *Handler) DeleteFile(c echo.Context) error {
	dbFile, err := h.isOwnerOrAdmin(c, c.Param("id"), "file")
	if err != nil {
		return err
	}

	file := dbFile.(*model.File)

	if h.Files != nil {
		if err := h.Files.Delete(c.Request().Context(), file.Path); err != nil {
			log.Errorf("delete %s from storage: %v", file.Path, err)
			return &echo.HTTPError{Code: http.StatusInternalServerError, Message: "Failed to delete file from storage"}
		}
	}

	r := h.DB.Delete(&model.File{}, "id = ?", file.ID)
	if r.Error != nil {
		log.Errorf("delete file %s: %v", file.ID, r.Error)
		return &echo.HTTPError{Code: http.StatusInternalServerError, Message: "Failed to delete file from DB"}
	}

	return c.JSON(http.StatusOK, DeleteResponse{Deleted: r.RowsAffected})
}

func (h *Handler) DownloadFile(c echo.Context) error {
	if h.Files == nil {
		return &echo.HTTPError{Code: http.StatusServiceUnavailable, Message: "File downloads are not configured."}
	}

	file := model.File{}
	if err := h.DB.First(&file, "id = ?", c.Param("id")).Error; err != nil {
		return &echo.HTTPError{Code: http.StatusNotFound, Message: "File not found."}
	}

	body, contentType, err := h.Files.Download(c.Request().Context(), file.Path)
	if err != nil {
		log.Errorf("download %s: %v", file.Path, err)
		return &echo.HTTPError{Code: http.StatusInternalServerError, Message: "Failed to download file."}
	}
	defer body.Close()

	if contentType == "" {
		contentType = file.Mime
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, "inline; filename="+file.ID)

	return c.Stream(http.StatusOK, contentType, body)
}

func (h *Handler) markFilesAsProvisioned(files []model.File) error {
	for _, file := range files {
		err := h.DB.Model(&model.File{}).Where("id = ?", file.ID).Update("is_provisional", false).Error
		if err != nil {
			return err
		}
	}

	return nil
}
