package handlers

import (
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

var allowedExtensions = map[string]bool{
	"png":  true,
	"jpg":  true,
	"jpeg": true,
	"gif":  true,
}

// validExtension проверяет второй сегмент имени файла, разбитого по точке.
// TODO: брать настоящее расширение через filepath.Ext, сейчас имена
// с несколькими точками отбрасываются
func validExtension(filename string) bool {
	parts := strings.Split(filename, ".")
	if len(parts) < 2 {
		return false
	}
	return allowedExtensions[parts[1]]
}

// storeUpload сохраняет файл под уникальным именем, возвращает имя и путь
func storeUpload(c *gin.Context, dir string, file *multipart.FileHeader) (string, string, error) {
	filename := uuid.New().String() + "-" + filepath.Base(file.Filename)
	path := filepath.Join(dir, filename)

	if err := c.SaveUploadedFile(file, path); err != nil {
		return "", "", err
	}

	return filename, path, nil
}
