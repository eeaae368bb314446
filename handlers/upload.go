package handlers

import (
	"io"
	"log"
	"net/http"

	"inkwell/graph"
	"inkwell/images"
	"inkwell/middleware"

	"github.com/gin-gonic/gin"
)

const maxUploadSize = 10 << 20 // 10 MB

var imageExtensions = map[string]string{
	"image/png":  ".png",
	"image/jpeg": ".jpg",
}

// UploadImage handles PUT /post-image. The file goes to the image
// store; if the caller names the image it replaces, the old file is
// deleted.
func UploadImage(store *images.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := middleware.UserID(c.Request.Context()); !ok {
			c.Error(graph.NewRequestError(http.StatusUnauthorized, "Not authenticated!", nil))
			return
		}

		if err := c.Request.ParseMultipartForm(maxUploadSize); err != nil {
			c.Error(graph.NewRequestError(http.StatusUnprocessableEntity, "Failed to parse form data.", nil))
			return
		}

		file, _, err := c.Request.FormFile("image")
		if err != nil {
			c.JSON(http.StatusOK, gin.H{"message": "No file provided!"})
			return
		}
		defer file.Close()

		// Sniff the content type instead of trusting the client header.
		head := make([]byte, 512)
		n, _ := io.ReadFull(file, head)
		ext, ok := imageExtensions[http.DetectContentType(head[:n])]
		if !ok {
			c.Error(graph.NewRequestError(http.StatusUnprocessableEntity, "Only PNG and JPEG files are allowed.", nil))
			return
		}
		if _, err := file.Seek(0, io.SeekStart); err != nil {
			c.Error(err)
			return
		}

		filePath, err := store.Save(file, ext)
		if err != nil {
			c.Error(err)
			return
		}

		if oldPath := c.PostForm("oldPath"); oldPath != "" {
			if err := store.Remove(oldPath); err != nil {
				log.Printf("failed to remove old image %s: %v", oldPath, err)
			}
		}

		c.JSON(http.StatusCreated, gin.H{
			"message":  "File stored.",
			"filePath": filePath,
		})
	}
}
