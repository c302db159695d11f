package gen

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-contrib/pprof"
	"github.com/gin-gonic/gin"

	"github.com/nilapparel/nilgen/gen/common"
	"github.com/nilapparel/nilgen/gen/roster"
)

// GetServer builds the router and returns it with the listen address.
// testFiles are served on GET /test in debug mode.
func GetServer(debugMode bool, config *common.Config, testFiles []string) (*gin.Engine, string) {
	if !debugMode {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()
	if debugMode {
		pprof.Register(router)
	}

	router.LoadHTMLGlob(filepath.Join(config.TemplatesDir, "*.html"))

	router.GET("/", func(c *gin.Context) {
		c.HTML(http.StatusOK, "index.html", gin.H{
			"Title":   config.AppName,
			"Version": config.Version,
		})
	})

	// Orders sheet upload
	router.POST("/api/generate", func(c *gin.Context) {
		log := common.NewLog()
		sendResponse(loadFormFiles(c, log), config, log, c)
	})

	// Single render from query parameters
	router.GET("/api/preview/:bundle", func(c *gin.Context) {
		sendPreview(c, config)
	})

	if debugMode {
		router.GET("/test", func(c *gin.Context) {
			// Use local files (specified on the command line)
			log := common.NewLog()
			sendResponse(loadLocalFiles(testFiles, log), config, log, c)
		})
	}

	// Run on port 8080 unless PORT variable specified
	port := os.Getenv("PORT")
	if len(port) == 0 {
		port = "8080"
	}
	return router, fmt.Sprintf(":%s", port)
}

func loadLocalFiles(files []string, log *common.Logger) [][]byte {
	var inputFiles [][]byte
	for _, filename := range files {
		file, err := os.ReadFile(filename)
		if err != nil {
			log.Err("Error reading file. %s", err)
			continue
		}
		inputFiles = append(inputFiles, file)
	}
	return inputFiles
}

func loadFormFiles(c *gin.Context, log *common.Logger) [][]byte {
	form, err := c.MultipartForm()
	if err != nil {
		log.Err("Error getting MultipartForm - %s", err)
		return make([][]byte, 0)
	}

	inputFiles := form.File["file"]
	files := make([][]byte, 0, len(inputFiles))
	for _, file := range inputFiles {
		multipart, err := file.Open()
		if err != nil {
			log.Err("Error opening multipart file %s - %s", file.Filename, err)
			continue
		}
		contents, err := io.ReadAll(multipart)
		multipart.Close()
		if err != nil {
			log.Err("Error reading multipart file %s - %s", file.Filename, err)
			continue
		}
		files = append(files, contents)
	}
	return files
}

type preview struct {
	Name           string
	Bundle         string
	Base64Contents string
}

func sendResponse(loadedFiles [][]byte, config *common.Config, log *common.Logger, c *gin.Context) {
	var orders []roster.Order
	for _, file := range loadedFiles {
		rows, err := roster.Parse(bytes.NewReader(file))
		if err != nil {
			log.Err("Error parsing orders - %s", err)
			continue
		}
		orders = append(orders, rows...)
	}
	if len(orders) == 0 {
		log.Err("No orders to generate")
	}

	var previews []preview
	for _, r := range GenerateImages(orders, config, log) {
		if r.Image == nil {
			continue
		}
		jpg, err := common.EncodeJpg(r.Image, config.JpgQuality)
		if err != nil {
			log.Err("Error encoding preview of %s - %s", r.Order.Name, err)
			continue
		}
		previews = append(previews, preview{
			Name:           r.Order.Name,
			Bundle:         r.Bundle.Name,
			Base64Contents: base64.StdEncoding.EncodeToString(jpg.Bytes()),
		})
		log.Msg("Created style: %s", r.Order.Name)
	}

	status := http.StatusOK
	if len(previews) == 0 && log.HasErrors() {
		status = http.StatusBadRequest
	}
	c.HTML(status, "results.html", gin.H{
		"Title":    config.AppName,
		"Version":  config.Version,
		"Previews": previews,
		"Logs":     log.Entries(),
	})
}

func sendPreview(c *gin.Context, config *common.Config) {
	b, err := LoadBundle(config, c.Param("bundle"))
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, ErrBundleNotFound) {
			status = http.StatusNotFound
		}
		c.String(status, err.Error())
		return
	}

	order := roster.Order{
		Name:      b.Name,
		Jersey:    strings.TrimSpace(c.Query("number")),
		FirstName: common.Upper(c.Query("first")),
		LastName:  common.Upper(c.Query("last")),
		Sport:     common.Upper(c.Query("sport")),
	}
	img, err := RenderOrder(b, order, PoliciesFor(config), config)
	if err != nil {
		c.String(http.StatusBadRequest, err.Error())
		return
	}
	var png bytes.Buffer
	if err := common.EncodePng(&png, img); err != nil {
		c.String(http.StatusInternalServerError, err.Error())
		return
	}
	c.Data(http.StatusOK, "image/png", png.Bytes())
}
