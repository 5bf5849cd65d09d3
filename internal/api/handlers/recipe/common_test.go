package recipe

import (
	"bytes"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"lumine-kitchen/internal/core/mealdb"
	"lumine-kitchen/internal/core/pantry"
	"lumine-kitchen/internal/core/session"
	"lumine-kitchen/internal/infrastructure/config"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

// newTestHandler 以假的上游伺服器組出完整食譜路由
func newTestHandler(t *testing.T, upstream http.HandlerFunc) (*gin.Engine, session.Store) {
	t.Helper()
	return newTestHandlerWithUpload(t, upstream, config.UploadConfig{
		MaxSizeBytes:  10 << 20,
		ProductColumn: pantry.DefaultProductColumn,
	})
}

func newTestHandlerWithUpload(t *testing.T, upstream http.HandlerFunc, upload config.UploadConfig) (*gin.Engine, session.Store) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	ts := httptest.NewServer(upstream)
	t.Cleanup(ts.Close)

	client := mealdb.NewClient(config.MealDBConfig{
		BaseURL: ts.URL,
		Timeout: 5 * time.Second,
	})
	sessions := session.NewMemoryStore(config.SessionConfig{
		TTL:             time.Hour,
		CleanupInterval: time.Minute,
		MaxEntries:      10,
	})
	t.Cleanup(sessions.Stop)

	h := NewHandler(client, sessions, upload)

	r := gin.New()
	r.POST("/api/v1/mixer/match", h.HandleMixerMatch)
	r.GET("/api/v1/roulette/filters", h.HandleRouletteFilters)
	r.POST("/api/v1/roulette/spin", h.HandleRouletteSpin)
	r.GET("/api/v1/haven", h.HandleHavenView)
	r.DELETE("/api/v1/haven", h.HandleHavenClear)
	return r, sessions
}

// productsWorkbook 產出單欄品項清單的 xlsx
func productsWorkbook(t *testing.T, names ...string) *bytes.Buffer {
	t.Helper()

	f := excelize.NewFile()
	sheet := f.GetSheetList()[0]
	require.NoError(t, f.SetSheetRow(sheet, "A1", &[]interface{}{pantry.DefaultProductColumn}))
	for i, name := range names {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &[]interface{}{name}))
	}

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf
}

// multipartUpload 把工作簿包成 products 欄位的 multipart 請求本體
func multipartUpload(t *testing.T, workbook io.Reader) (*bytes.Buffer, string) {
	t.Helper()

	body := &bytes.Buffer{}
	mw := multipart.NewWriter(body)
	part, err := mw.CreateFormFile("products", "products.xlsx")
	require.NoError(t, err)
	_, err = io.Copy(part, workbook)
	require.NoError(t, err)
	require.NoError(t, mw.Close())
	return body, mw.FormDataContentType()
}
