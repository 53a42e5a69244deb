package httpapi

import (
	"context"
	"fmt"
	"time"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/utils"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
)

const errInvalidJSON = "invalid json"

type uploadRequest struct {
	Filename string `json:"filename"`
}

type uploadResponse struct {
	Message   string `json:"message"`
	FileID    string `json:"fileId"`
	UploadURL string `json:"uploadUrl"`
}

// Upload POST /files/upload
func (s *HTTPServer) Upload(ctx context.Context, c *app.RequestContext) {
	user, ok := currentUser(c)
	if !ok {
		c.JSON(consts.StatusUnauthorized, utils.H{"error": "Invalid token"})
		return
	}

	var req uploadRequest
	if err := c.Bind(&req); err != nil {
		c.JSON(consts.StatusBadRequest, utils.H{"error": errInvalidJSON})
		return
	}
	if req.Filename == "" {
		c.JSON(consts.StatusBadRequest, utils.H{"error": "filename is required"})
		return
	}

	s.logger.Info(ctx, "Upload request", "filename", req.Filename, "user", user.Email)

	file, uploadURL, err := s.files.Upload(ctx, user.ID, req.Filename)
	if err != nil {
		s.renderError(ctx, c, err)
		return
	}

	c.JSON(consts.StatusOK, uploadResponse{
		Message:   "File uploaded!",
		FileID:    file.ID,
		UploadURL: uploadURL,
	})
}

type grantRequest struct {
	FileID    string `json:"fileId"`
	ToEmail   string `json:"toEmail"`
	ExpiresAt string `json:"expiresAt,omitempty"` // RFC3339, optional; empty => permanent
}

// Grant POST /files/grant
func (s *HTTPServer) Grant(ctx context.Context, c *app.RequestContext) {
	user, ok := currentUser(c)
	if !ok {
		c.JSON(consts.StatusUnauthorized, utils.H{"error": "Invalid token"})
		return
	}

	var req grantRequest
	if err := c.Bind(&req); err != nil {
		c.JSON(consts.StatusBadRequest, utils.H{"error": errInvalidJSON})
		return
	}
	if req.FileID == "" {
		c.JSON(consts.StatusBadRequest, utils.H{"error": "fileId is required"})
		return
	}
	if req.ToEmail == "" {
		c.JSON(consts.StatusBadRequest, utils.H{"error": "toEmail is required"})
		return
	}

	var expiresAt *time.Time
	if req.ExpiresAt != "" {
		t, err := time.Parse(time.RFC3339Nano, req.ExpiresAt)
		if err != nil {
			c.JSON(consts.StatusBadRequest, utils.H{"error": "expiresAt must be RFC3339"})
			return
		}
		expiresAt = &t
	}

	if _, err := s.grants.Grant(ctx, user.ID, req.FileID, req.ToEmail, expiresAt); err != nil {
		s.renderError(ctx, c, err)
		return
	}

	s.logger.Info(ctx, "Access granted", "file_id", req.FileID, "to", req.ToEmail)
	c.JSON(consts.StatusOK, utils.H{"message": fmt.Sprintf("Access granted to %s", req.ToEmail)})
}

type revokeRequest struct {
	FileID  string `json:"fileId"`
	ToEmail string `json:"toEmail"`
}

// Revoke POST /files/revoke
func (s *HTTPServer) Revoke(ctx context.Context, c *app.RequestContext) {
	user, ok := currentUser(c)
	if !ok {
		c.JSON(consts.StatusUnauthorized, utils.H{"error": "Invalid token"})
		return
	}

	var req revokeRequest
	if err := c.Bind(&req); err != nil {
		c.JSON(consts.StatusBadRequest, utils.H{"error": errInvalidJSON})
		return
	}
	if req.FileID == "" {
		c.JSON(consts.StatusBadRequest, utils.H{"error": "fileId is required"})
		return
	}
	if req.ToEmail == "" {
		c.JSON(consts.StatusBadRequest, utils.H{"error": "toEmail is required"})
		return
	}

	if err := s.grants.Revoke(ctx, user.ID, req.FileID, req.ToEmail); err != nil {
		s.renderError(ctx, c, err)
		return
	}

	s.logger.Info(ctx, "Access revoked", "file_id", req.FileID, "to", req.ToEmail)
	c.JSON(consts.StatusOK, utils.H{"message": fmt.Sprintf("Access revoked for %s", req.ToEmail)})
}

type fileResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

// MyFiles GET /files/myfiles
func (s *HTTPServer) MyFiles(ctx context.Context, c *app.RequestContext) {
	user, ok := currentUser(c)
	if !ok {
		c.JSON(consts.StatusUnauthorized, utils.H{"error": "Invalid token"})
		return
	}

	files, err := s.files.MyFiles(ctx, user.ID)
	if err != nil {
		s.renderError(ctx, c, err)
		return
	}

	out := make([]fileResponse, 0, len(files))
	for _, f := range files {
		out = append(out, fileResponse{ID: f.ID, Name: f.Name, CreatedAt: f.CreatedAt})
	}

	c.JSON(consts.StatusOK, utils.H{"files": out})
}

type sharedFileResponse struct {
	FileID   string `json:"fileId"`
	FileName string `json:"fileName"`
	Owner    string `json:"owner"`
}

// SharedWithMe GET /files/shared
func (s *HTTPServer) SharedWithMe(ctx context.Context, c *app.RequestContext) {
	user, ok := currentUser(c)
	if !ok {
		c.JSON(consts.StatusUnauthorized, utils.H{"error": "Invalid token"})
		return
	}

	shared, err := s.files.SharedWithMe(ctx, user.ID)
	if err != nil {
		s.renderError(ctx, c, err)
		return
	}

	out := make([]sharedFileResponse, 0, len(shared))
	for _, f := range shared {
		out = append(out, sharedFileResponse{FileID: f.FileID, FileName: f.FileName, Owner: f.Owner})
	}

	c.JSON(consts.StatusOK, utils.H{"sharedFiles": out})
}

// Download GET /files/download/:fileId
func (s *HTTPServer) Download(ctx context.Context, c *app.RequestContext) {
	user, ok := currentUser(c)
	if !ok {
		c.JSON(consts.StatusUnauthorized, utils.H{"error": "Invalid token"})
		return
	}

	fileID := c.Param("fileId")

	decision, url, err := s.access.Download(ctx, user.ID, fileID)
	if err != nil {
		s.renderError(ctx, c, err)
		return
	}

	c.JSON(consts.StatusOK, utils.H{"url": url, "decision": string(decision)})
}

type timelineEntryResponse struct {
	Type string    `json:"type"`
	By   string    `json:"by"`
	To   *string   `json:"to,omitempty"`
	At   time.Time `json:"at"`
}

type logsResponse struct {
	Logs          []timelineEntryResponse `json:"logs"`
	RevokedEmails []string                `json:"revokedEmails"`
	ExpiredEmails []string                `json:"expiredEmails"`
}

// Logs GET /files/logs/:fileId
func (s *HTTPServer) Logs(ctx context.Context, c *app.RequestContext) {
	user, ok := currentUser(c)
	if !ok {
		c.JSON(consts.StatusUnauthorized, utils.H{"error": "Invalid token"})
		return
	}

	fileID := c.Param("fileId")

	tl, err := s.timeline.Timeline(ctx, user.ID, fileID)
	if err != nil {
		s.renderError(ctx, c, err)
		return
	}

	resp := logsResponse{
		Logs:          make([]timelineEntryResponse, 0, len(tl.Entries)),
		RevokedEmails: tl.RevokedEmails,
		ExpiredEmails: tl.ExpiredEmails,
	}
	if resp.RevokedEmails == nil {
		resp.RevokedEmails = []string{}
	}
	if resp.ExpiredEmails == nil {
		resp.ExpiredEmails = []string{}
	}
	for _, e := range tl.Entries {
		resp.Logs = append(resp.Logs, timelineEntryResponse(e))
	}

	c.JSON(consts.StatusOK, resp)
}

type fileCountResponse struct {
	FileName      string `json:"fileName"`
	DownloadCount int    `json:"downloadCount"`
}

type dailyCountResponse struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

type analyticsResponse struct {
	TotalDownloads int                  `json:"totalDownloads"`
	MostAccessed   []fileCountResponse  `json:"mostAccessed"`
	AccessPattern  []dailyCountResponse `json:"accessPattern"`
}

// AnalyticsSummary GET /files/analytics/summary
func (s *HTTPServer) AnalyticsSummary(ctx context.Context, c *app.RequestContext) {
	user, ok := currentUser(c)
	if !ok {
		c.JSON(consts.StatusUnauthorized, utils.H{"error": "Invalid token"})
		return
	}

	summary, err := s.analytics.Summary(ctx, user.ID)
	if err != nil {
		s.renderError(ctx, c, err)
		return
	}

	resp := analyticsResponse{
		TotalDownloads: summary.TotalDownloads,
		MostAccessed:   make([]fileCountResponse, 0, len(summary.MostAccessed)),
		AccessPattern:  make([]dailyCountResponse, 0, len(summary.AccessPattern)),
	}
	for _, f := range summary.MostAccessed {
		resp.MostAccessed = append(resp.MostAccessed, fileCountResponse(f))
	}
	for _, d := range summary.AccessPattern {
		resp.AccessPattern = append(resp.AccessPattern, dailyCountResponse(d))
	}

	c.JSON(consts.StatusOK, resp)
}

// Ping GET /ping
func (s *HTTPServer) Ping(ctx context.Context, c *app.RequestContext) {
	c.JSON(consts.StatusOK, utils.H{"status": "OK"})
}
