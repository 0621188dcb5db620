package handler

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"

	"absensi/internal/absensi"
	"absensi/internal/auth"
	"absensi/internal/export"
	"absensi/internal/roster"
)

const maxPhotoBytes = 5 << 20 // 5MB, same cap the upload form advertises

// RecordService is the attendance record surface the handlers need.
type RecordService interface {
	Submit(ctx context.Context, raw absensi.RawSubmission, photo *absensi.Photo) (absensi.Record, error)
	List(ctx context.Context) ([]absensi.Record, error)
	DeleteOne(ctx context.Context, id string) error
	DeleteMany(ctx context.Context, ids []string) (int64, error)
}

// RosterService is the employee roster surface the handlers need.
type RosterService interface {
	Names(ctx context.Context) ([]string, error)
	List(ctx context.Context) ([]roster.Employee, error)
	Add(ctx context.Context, name string) (roster.Employee, error)
	Delete(ctx context.Context, id string) error
}

// HealthChecker reports record store connectivity.
type HealthChecker interface {
	Healthy(ctx context.Context) bool
}

// SessionRevoker invalidates a session token id until its natural expiry.
type SessionRevoker interface {
	RevokeSession(ctx context.Context, jti string, ttl time.Duration) error
}

// AuthConfig holds the admin credentials and token settings.
type AuthConfig struct {
	User         string
	Pass         string
	Issuer       string
	SigningKey   string
	SessionTTL   time.Duration
	SecureCookie bool
}

// Handler serves the attendance API.
type Handler struct {
	records  RecordService
	roster   RosterService
	health   HealthChecker
	sessions SessionRevoker
	authCfg  AuthConfig
}

// New creates a handler.
func New(records RecordService, rosterSvc RosterService, health HealthChecker, sessions SessionRevoker, authCfg AuthConfig) *Handler {
	return &Handler{
		records:  records,
		roster:   rosterSvc,
		health:   health,
		sessions: sessions,
		authCfg:  authCfg,
	}
}

func fail(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"success": false, "message": message})
}

// ---------- Submission ----------

// SubmitAbsensi handles the multipart attendance submission: image field
// "foto" plus the text fields nama, area, jenis, rentangWaktu, desc,
// timestamp, consent.
func (h *Handler) SubmitAbsensi(c *gin.Context) {
	raw := absensi.RawSubmission{
		Nama:         c.PostForm("nama"),
		Area:         c.PostFormArray("area"),
		Jenis:        c.PostForm("jenis"),
		RentangWaktu: c.PostForm("rentangWaktu"),
		Deskripsi:    c.PostForm("desc"),
		Timestamp:    c.PostForm("timestamp"),
		Consent:      c.PostForm("consent"),
	}

	var photo *absensi.Photo
	if file, header, err := c.Request.FormFile("foto"); err == nil {
		defer file.Close()

		if header.Size > maxPhotoBytes {
			fail(c, http.StatusBadRequest, "Ukuran file maksimal 5MB")
			return
		}
		contentType := header.Header.Get("Content-Type")
		if !isImage(header.Filename, contentType) {
			fail(c, http.StatusBadRequest, "Hanya file gambar yang diperbolehkan!")
			return
		}

		data, rerr := io.ReadAll(io.LimitReader(file, maxPhotoBytes+1))
		if rerr != nil {
			fail(c, http.StatusInternalServerError, "Gagal membaca file")
			return
		}
		if int64(len(data)) > maxPhotoBytes {
			fail(c, http.StatusBadRequest, "Ukuran file maksimal 5MB")
			return
		}
		photo = &absensi.Photo{Filename: header.Filename, ContentType: contentType, Data: data}
	}

	rec, err := h.records.Submit(c.Request.Context(), raw, photo)
	if err != nil {
		if errors.Is(err, absensi.ErrMissingFields) || errors.Is(err, absensi.ErrPhotoRequired) {
			fail(c, http.StatusBadRequest, err.Error())
			return
		}
		log.Printf("submit absensi failed: %v", err)
		fail(c, http.StatusInternalServerError, err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Data absensi berhasil disimpan!",
		"data":    rec,
	})
}

var imageExtensions = map[string]bool{".jpeg": true, ".jpg": true, ".png": true, ".gif": true}

func isImage(filename, contentType string) bool {
	if !imageExtensions[strings.ToLower(filepath.Ext(filename))] {
		return false
	}
	switch contentType {
	case "image/jpeg", "image/jpg", "image/png", "image/gif":
		return true
	}
	return false
}

// ---------- Listing and export ----------

// ListAbsensi returns all records, newest first.
func (h *Handler) ListAbsensi(c *gin.Context) {
	records, err := h.records.List(c.Request.Context())
	if err != nil {
		fail(c, http.StatusInternalServerError, err.Error())
		return
	}
	if records == nil {
		records = []absensi.Record{}
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": records})
}

// ExportExcel streams all records as an Absensi.xlsx attachment.
func (h *Handler) ExportExcel(c *gin.Context) {
	records, err := h.records.List(c.Request.Context())
	if err != nil {
		fail(c, http.StatusInternalServerError, err.Error())
		return
	}
	f, err := export.Workbook(records, export.DefaultLocale)
	if err != nil {
		if errors.Is(err, export.ErrEmptyDataset) {
			fail(c, http.StatusNotFound, err.Error())
			return
		}
		fail(c, http.StatusInternalServerError, err.Error())
		return
	}
	h.writeWorkbook(c, f, "Absensi.xlsx")
}

// ExportExcelPerNama streams records for one employee as an attachment.
func (h *Handler) ExportExcelPerNama(c *gin.Context) {
	nama := c.Query("nama")
	if nama == "" {
		fail(c, http.StatusBadRequest, "Parameter nama harus diisi")
		return
	}
	records, err := h.records.List(c.Request.Context())
	if err != nil {
		fail(c, http.StatusInternalServerError, err.Error())
		return
	}
	f, err := export.WorkbookForName(records, nama, export.DefaultLocale)
	if err != nil {
		if errors.Is(err, export.ErrNoDataForName) {
			fail(c, http.StatusNotFound, err.Error())
			return
		}
		fail(c, http.StatusInternalServerError, err.Error())
		return
	}
	h.writeWorkbook(c, f, fmt.Sprintf("Absensi_%s.xlsx", nama))
}

func (h *Handler) writeWorkbook(c *gin.Context, f *excelize.File, filename string) {
	buf, err := f.WriteToBuffer()
	if err != nil {
		fail(c, http.StatusInternalServerError, err.Error())
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, export.ContentType, buf.Bytes())
}

// ---------- Deletion ----------

// DeleteAbsensi removes one record by path id.
func (h *Handler) DeleteAbsensi(c *gin.Context) {
	err := h.records.DeleteOne(c.Request.Context(), c.Param("id"))
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Data berhasil dihapus"})
	case errors.Is(err, absensi.ErrInvalidID):
		fail(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, absensi.ErrNotFound):
		fail(c, http.StatusNotFound, err.Error())
	default:
		log.Printf("delete absensi failed: %v", err)
		fail(c, http.StatusInternalServerError, err.Error())
	}
}

// DeleteMultiple removes a batch of records. Malformed ids are dropped
// silently; the request fails only when none are valid.
func (h *Handler) DeleteMultiple(c *gin.Context) {
	var req struct {
		IDs []string `json:"ids"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, absensi.ErrInvalidID.Error())
		return
	}
	deleted, err := h.records.DeleteMany(c.Request.Context(), req.IDs)
	if err != nil {
		if errors.Is(err, absensi.ErrInvalidID) {
			fail(c, http.StatusBadRequest, err.Error())
			return
		}
		log.Printf("delete multiple failed: %v", err)
		fail(c, http.StatusInternalServerError, err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "deletedCount": deleted})
}

// ---------- Roster ----------

// Employees returns just the roster names for the submission form.
func (h *Handler) Employees(c *gin.Context) {
	names, err := h.roster.Names(c.Request.Context())
	if err != nil {
		fail(c, http.StatusInternalServerError, err.Error())
		return
	}
	if names == nil {
		names = []string{}
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": names})
}

// ListPegawai returns the full roster entries.
func (h *Handler) ListPegawai(c *gin.Context) {
	emps, err := h.roster.List(c.Request.Context())
	if err != nil {
		fail(c, http.StatusInternalServerError, err.Error())
		return
	}
	if emps == nil {
		emps = []roster.Employee{}
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": emps})
}

// AddPegawai adds a roster entry, rejecting empty and duplicate names.
func (h *Handler) AddPegawai(c *gin.Context) {
	var req struct {
		Name string `json:"name"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, roster.ErrNameRequired.Error())
		return
	}
	emp, err := h.roster.Add(c.Request.Context(), req.Name)
	if err != nil {
		if errors.Is(err, roster.ErrNameRequired) || errors.Is(err, roster.ErrDuplicate) {
			fail(c, http.StatusBadRequest, err.Error())
			return
		}
		fail(c, http.StatusInternalServerError, err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Pegawai berhasil ditambahkan", "data": emp})
}

// DeletePegawai removes a roster entry by path id.
func (h *Handler) DeletePegawai(c *gin.Context) {
	err := h.roster.Delete(c.Request.Context(), c.Param("id"))
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Pegawai berhasil dihapus"})
	case errors.Is(err, roster.ErrInvalidID):
		fail(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, roster.ErrNotFound):
		fail(c, http.StatusNotFound, err.Error())
	default:
		fail(c, http.StatusInternalServerError, err.Error())
	}
}

// ---------- Auth ----------

// Login checks the configured admin credentials and sets the session cookie.
func (h *Handler) Login(c *gin.Context) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "Username dan password harus diisi")
		return
	}

	userOK := subtle.ConstantTimeCompare([]byte(req.Username), []byte(h.authCfg.User)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(req.Password), []byte(h.authCfg.Pass)) == 1
	if h.authCfg.Pass == "" || !userOK || !passOK {
		fail(c, http.StatusUnauthorized, "Username atau password salah")
		return
	}

	session, err := auth.Issue(req.Username, h.authCfg.Issuer, h.authCfg.SigningKey, h.authCfg.SessionTTL)
	if err != nil {
		fail(c, http.StatusInternalServerError, "Gagal membuat sesi")
		return
	}

	c.SetCookie(auth.CookieName, session.Token, int(h.authCfg.SessionTTL.Seconds()), "/", "", h.authCfg.SecureCookie, true)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"token":     session.Token,
			"expiresAt": session.ExpiresAt.Unix(),
		},
	})
}

// Logout revokes the current session token and clears the cookie.
func (h *Handler) Logout(c *gin.Context) {
	tokenStr, err := c.Cookie(auth.CookieName)
	if err != nil || tokenStr == "" {
		c.JSON(http.StatusOK, gin.H{"success": true})
		return
	}
	if claims, perr := auth.Parse(tokenStr, h.authCfg.SigningKey, h.authCfg.Issuer); perr == nil && h.sessions != nil {
		ttl := time.Until(claims.ExpiresAt.Time)
		if rerr := h.sessions.RevokeSession(c.Request.Context(), claims.ID, ttl); rerr != nil {
			log.Printf("session revoke failed: %v", rerr)
		}
	}
	c.SetCookie(auth.CookieName, "", -1, "/", "", h.authCfg.SecureCookie, true)
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// ---------- Health ----------

// Health probes the record store once.
func (h *Handler) Health(c *gin.Context) {
	if h.health == nil || !h.health.Healthy(c.Request.Context()) {
		fail(c, http.StatusInternalServerError, "Store tidak dapat dihubungi")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Running"})
}
