// Package github pushes the saved step document to a repository via
// the GitHub contents API. The push is a best-effort backup: callers
// log failures and move on, the local save is already done.
package github

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const defaultTimeout = 30 * time.Second

// Syncer updates one file in one repository, creating it on first push.
type Syncer struct {
	token   string
	repo    string // "owner/name"
	path    string // path of the file inside the repo
	branch  string
	baseURL string
	hc      *http.Client
}

func NewSyncer(token, repo, path string) *Syncer {
	return &Syncer{
		token:   token,
		repo:    repo,
		path:    path,
		branch:  "main",
		baseURL: "https://api.github.com",
		hc:      &http.Client{Timeout: defaultTimeout},
	}
}

type contentsResponse struct {
	SHA string `json:"sha"`
}

type updateRequest struct {
	Message string `json:"message"`
	Content string `json:"content"`
	Branch  string `json:"branch"`
	SHA     string `json:"sha,omitempty"`
}

// Push uploads content as the tracked file. An existing revision is
// looked up first so the PUT updates instead of conflicting; a
// missing file simply has no sha and gets created.
func (s *Syncer) Push(content []byte) error {
	url := fmt.Sprintf("%s/repos/%s/contents/%s", s.baseURL, s.repo, s.path)

	body := updateRequest{
		Message: "Обновление данных шагов",
		Content: base64.StdEncoding.EncodeToString(content),
		Branch:  s.branch,
		SHA:     s.currentSHA(url),
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encode push request: %w", err)
	}

	req, err := http.NewRequest(http.MethodPut, url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build push request: %w", err)
	}
	req.Header.Set("Authorization", "token "+s.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.hc.Do(req)
	if err != nil {
		return fmt.Errorf("push to github: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("github responded %d: %s", resp.StatusCode, msg)
	}
	return nil
}

// currentSHA fetches the sha of the existing file revision. Any
// failure, including a 404 for a not-yet-created file, yields an
// empty sha and lets the PUT attempt a create.
func (s *Syncer) currentSHA(url string) string {
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return ""
	}
	req.Header.Set("Authorization", "token "+s.token)

	resp, err := s.hc.Do(req)
	if err != nil {
		return ""
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return ""
	}
	var cr contentsResponse
	if err := json.NewDecoder(resp.Body).Decode(&cr); err != nil {
		return ""
	}
	return cr.SHA
}
