package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/funfan0517/MediaPublishPlatform/internal/exitcode"
)

// File types accepted by the backend.
const (
	FileTypeImage = 1
	FileTypeVideo = 2
)

// PostVideoRequest is the body of POST /postVideo.
type PostVideoRequest struct {
	Type         int      `json:"type" validate:"min=1,max=7"`
	AccountList  []string `json:"accountList" validate:"min=1,dive,required"`
	FileType     int      `json:"fileType" validate:"oneof=1 2"`
	FileList     []string `json:"fileList" validate:"min=1,dive,required"`
	Title        string   `json:"title"`
	Text         string   `json:"text,omitempty"`
	Tags         []string `json:"tags,omitempty"`
	Category     int      `json:"category" validate:"min=0,max=6"`
	Thumbnail    string   `json:"thumbnail,omitempty"`
	Location     int      `json:"location,omitempty" validate:"omitempty,oneof=1 2"`
	ProductLink  string   `json:"productLink,omitempty" validate:"omitempty,url"`
	ProductTitle string   `json:"productTitle,omitempty"`
	IsDraft      bool     `json:"isDraft"`
	EnableTimer  int      `json:"enableTimer" validate:"oneof=0 1"`
	VideosPerDay int      `json:"videosPerDay" validate:"gte=0"`
	DailyTimes   []string `json:"dailyTimes,omitempty" validate:"dive,datetime=15:04"`
	StartDays    int      `json:"startDays" validate:"gte=0"`
}

var validate = validator.New()

// Validate checks the request before it is sent.
func (r *PostVideoRequest) Validate() error {
	if err := validate.Struct(r); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			fields := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				fields = append(fields, fmt.Sprintf("%s (%s)", fe.Field(), fe.Tag()))
			}
			return exitcode.Usagef("invalid publish request: %s", strings.Join(fields, ", "))
		}
		return exitcode.BadInput("invalid publish request", err)
	}
	if r.EnableTimer == 1 && r.VideosPerDay == 0 {
		return exitcode.Usage("invalid publish request: videosPerDay must be set when the timer is enabled")
	}
	return nil
}

// PostVideo submits a publish task. The request is validated first and
// nothing is sent when it is invalid.
func (c *Client) PostVideo(req PostVideoRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}
	_, err := c.Post("/postVideo", req)
	return err
}

// CancelTask cancels the publish task with the given ID.
func (c *Client) CancelTask(id string) error {
	if id == "" {
		return exitcode.Usage("task ID is required")
	}
	_, err := c.Get("/cancelTask", url.Values{"id": {id}})
	return err
}

// TaskRecord is one account/file pair of a publish task.
type TaskRecord struct {
	ID           int     `json:"id"`
	TaskID       string  `json:"taskId"`
	FileName     string  `json:"fileName"`
	FileID       *string `json:"fileId"`
	AccountID    string  `json:"accountId"`
	AccountName  string  `json:"accountName"`
	PlatformName string  `json:"platformName"`
	PlatformType int     `json:"platformType"`
	Status       string  `json:"status"`
	CreateTime   string  `json:"createTime"`
	UpdateTime   string  `json:"updateTime"`
	ErrorMsg     *string `json:"errorMsg"`
}

// TaskStatus is the state of a publish task.
type TaskStatus struct {
	TaskID   string       `json:"taskId"`
	Status   string       `json:"status"`
	Total    int64        `json:"total"`
	Finished int64        `json:"finished"`
	Failed   int64        `json:"failed"`
	Records  []TaskRecord `json:"records"`
}

// TaskStatus fetches the status of the publish task with the given ID.
func (c *Client) TaskStatus(id string) (*TaskStatus, error) {
	if id == "" {
		return nil, exitcode.Usage("task ID is required")
	}
	data, err := c.Get("/taskStatus", url.Values{"id": {id}})
	if err != nil {
		return nil, err
	}
	if len(data) == 0 || string(data) == "null" {
		return nil, exitcode.NotFoundError(fmt.Sprintf("task %q not found", id))
	}

	var status TaskStatus
	if err := json.Unmarshal(data, &status); err != nil {
		return nil, exitcode.General("parsing task status", err)
	}
	if status.TaskID == "" {
		status.TaskID = id
	}
	return &status, nil
}

// PlatformFeatures lists what a platform's uploader supports.
type PlatformFeatures struct {
	ImagePublish bool `json:"image_publish"`
	Title        bool `json:"title"`
	Textbox      bool `json:"textbox"`
	Tags         bool `json:"tags"`
	Thumbnail    bool `json:"thumbnail"`
	Location     bool `json:"location"`
	Schedule     bool `json:"schedule"`
}

// PlatformConfig is the backend's configuration for one platform.
type PlatformConfig struct {
	Type            int              `json:"type"`
	PlatformName    string           `json:"platform_name"`
	PersonalURL     string           `json:"personal_url"`
	LoginURL        string           `json:"login_url"`
	CreatorVideoURL string           `json:"creator_video_url"`
	CreatorImageURL string           `json:"creator_image_url"`
	Features        PlatformFeatures `json:"features"`
}

// PlatformConfig fetches the configuration for a platform type (1-7).
func (c *Client) PlatformConfig(platformType int) (*PlatformConfig, error) {
	if platformType < 1 || platformType > 7 {
		return nil, exitcode.Usagef("platform type must be between 1 and 7, got %d", platformType)
	}
	data, err := c.Get("/platformConfig", url.Values{"type": {strconv.Itoa(platformType)}})
	if err != nil {
		return nil, err
	}
	var cfg PlatformConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, exitcode.General("parsing platform config", err)
	}
	return &cfg, nil
}
