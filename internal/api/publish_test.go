package api

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/funfan0517/MediaPublishPlatform/internal/exitcode"
	"github.com/funfan0517/MediaPublishPlatform/internal/testutil"
)

func validRequest() PostVideoRequest {
	return PostVideoRequest{
		Type:        3,
		AccountList: []string{"douyin_cookie.json"},
		FileType:    FileTypeVideo,
		FileList:    []string{"a1b2c3_demo.mp4"},
		Title:       "周末去哪儿",
		Tags:        []string{"旅行", "日常"},
		Category:    3,
	}
}

func TestPostVideo(t *testing.T) {
	ms := testutil.NewMockServer(t)
	ms.HandleOK(http.MethodPost, "/postVideo", nil)

	req := validRequest()
	req.EnableTimer = 1
	req.VideosPerDay = 2
	req.DailyTimes = []string{"09:00", "21:30"}
	req.StartDays = 1

	if err := New(WithEndpoint(ms.URL())).PostVideo(req); err != nil {
		t.Fatalf("PostVideo() error: %v", err)
	}

	got, ok := ms.LastRequest()
	if !ok {
		t.Fatal("no request sent")
	}
	var body map[string]any
	if err := json.Unmarshal(got.Body, &body); err != nil {
		t.Fatal(err)
	}
	if body["type"] != float64(3) || body["fileType"] != float64(2) {
		t.Errorf("body = %v", body)
	}
	if body["enableTimer"] != float64(1) || body["videosPerDay"] != float64(2) {
		t.Errorf("timer fields = %v / %v", body["enableTimer"], body["videosPerDay"])
	}
	if times, _ := body["dailyTimes"].([]any); len(times) != 2 || times[1] != "21:30" {
		t.Errorf("dailyTimes = %v", body["dailyTimes"])
	}
	if _, present := body["productLink"]; present {
		t.Error("empty productLink should be omitted")
	}
}

func TestPostVideoValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*PostVideoRequest)
		field  string
	}{
		{"type too low", func(r *PostVideoRequest) { r.Type = 0 }, "Type"},
		{"type too high", func(r *PostVideoRequest) { r.Type = 8 }, "Type"},
		{"no accounts", func(r *PostVideoRequest) { r.AccountList = nil }, "AccountList"},
		{"blank account", func(r *PostVideoRequest) { r.AccountList = []string{""} }, "AccountList"},
		{"no files", func(r *PostVideoRequest) { r.FileList = []string{} }, "FileList"},
		{"bad file type", func(r *PostVideoRequest) { r.FileType = 3 }, "FileType"},
		{"bad category", func(r *PostVideoRequest) { r.Category = 9 }, "Category"},
		{"bad location", func(r *PostVideoRequest) { r.Location = 3 }, "Location"},
		{"bad product link", func(r *PostVideoRequest) { r.ProductLink = "not a url" }, "ProductLink"},
		{"bad timer flag", func(r *PostVideoRequest) { r.EnableTimer = 2 }, "EnableTimer"},
		{"negative per day", func(r *PostVideoRequest) { r.VideosPerDay = -1 }, "VideosPerDay"},
		{"negative start days", func(r *PostVideoRequest) { r.StartDays = -1 }, "StartDays"},
		{"bad daily time", func(r *PostVideoRequest) { r.DailyTimes = []string{"9am"} }, "DailyTimes"},
		{"timer without per day", func(r *PostVideoRequest) { r.EnableTimer = 1 }, "videosPerDay"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ms := testutil.NewMockServer(t)
			ms.HandleOK(http.MethodPost, "/postVideo", nil)

			req := validRequest()
			tt.mutate(&req)
			err := New(WithEndpoint(ms.URL())).PostVideo(req)
			if err == nil {
				t.Fatal("expected validation error")
			}
			if exitcode.ExitCode(err) != exitcode.UsageError {
				t.Errorf("exit code = %d, want usage", exitcode.ExitCode(err))
			}
			if !strings.Contains(err.Error(), tt.field) {
				t.Errorf("error = %q, want it to name %q", err.Error(), tt.field)
			}
			if len(ms.Requests()) != 0 {
				t.Error("invalid request was sent")
			}
		})
	}
}

func TestCancelTask(t *testing.T) {
	ms := testutil.NewMockServer(t)
	ms.HandleOK(http.MethodGet, "/cancelTask", nil)

	client := New(WithEndpoint(ms.URL()))
	if err := client.CancelTask("task-1"); err != nil {
		t.Fatalf("CancelTask() error: %v", err)
	}
	req, _ := ms.LastRequest()
	if req.Query.Get("id") != "task-1" {
		t.Errorf("id = %q, want task-1", req.Query.Get("id"))
	}

	if err := client.CancelTask(""); exitcode.ExitCode(err) != exitcode.UsageError {
		t.Errorf("CancelTask(\"\") = %v, want usage error", err)
	}
}

func TestTaskStatus(t *testing.T) {
	ms := testutil.NewMockServer(t)
	ms.HandleRaw(http.MethodGet, "/taskStatus", http.StatusOK, testutil.LoadFixture(t, "task-status.json"))

	status, err := New(WithEndpoint(ms.URL())).TaskStatus("7f6c1d2e-5b1a-4c55-9a57-0f7f3c9b2a10")
	if err != nil {
		t.Fatalf("TaskStatus() error: %v", err)
	}
	if status.Status != "发布中" || status.Total != 1204 || status.Failed != 3 {
		t.Errorf("status = %+v", status)
	}
	if len(status.Records) != 2 {
		t.Fatalf("records = %d, want 2", len(status.Records))
	}
	if status.Records[0].FileID == nil || *status.Records[0].FileID != "a1b2c3" {
		t.Errorf("records[0].FileID = %v", status.Records[0].FileID)
	}
	if status.Records[1].ErrorMsg == nil || *status.Records[1].ErrorMsg != "上传超时" {
		t.Errorf("records[1].ErrorMsg = %v", status.Records[1].ErrorMsg)
	}
}

func TestTaskStatusNullData(t *testing.T) {
	ms := testutil.NewMockServer(t)
	ms.HandleOK(http.MethodGet, "/taskStatus", nil)

	_, err := New(WithEndpoint(ms.URL())).TaskStatus("gone")
	if exitcode.ExitCode(err) != exitcode.NotFound {
		t.Errorf("err = %v, want not found", err)
	}
}

func TestTaskStatusFillsID(t *testing.T) {
	ms := testutil.NewMockServer(t)
	ms.HandleOK(http.MethodGet, "/taskStatus", map[string]any{"status": "发布成功"})

	status, err := New(WithEndpoint(ms.URL())).TaskStatus("t-9")
	if err != nil {
		t.Fatal(err)
	}
	if status.TaskID != "t-9" {
		t.Errorf("TaskID = %q, want t-9", status.TaskID)
	}
}

func TestPlatformConfig(t *testing.T) {
	ms := testutil.NewMockServer(t)
	ms.HandleRaw(http.MethodGet, "/platformConfig", http.StatusOK, testutil.LoadFixture(t, "platform-config.json"))

	cfg, err := New(WithEndpoint(ms.URL())).PlatformConfig(1)
	if err != nil {
		t.Fatalf("PlatformConfig() error: %v", err)
	}
	if cfg.PlatformName != "xiaohongshu" || !cfg.Features.ImagePublish || cfg.Features.Schedule {
		t.Errorf("config = %+v", cfg)
	}
	req, _ := ms.LastRequest()
	if req.Query.Get("type") != "1" {
		t.Errorf("type = %q, want 1", req.Query.Get("type"))
	}
	if want := testutil.FixtureData[PlatformConfig](t, "platform-config.json"); *cfg != want {
		t.Errorf("config = %+v, want %+v", *cfg, want)
	}
}

func TestPlatformConfigRejectsType(t *testing.T) {
	ms := testutil.NewMockServer(t)
	client := New(WithEndpoint(ms.URL()))
	for _, typ := range []int{0, 8, -1} {
		if _, err := client.PlatformConfig(typ); exitcode.ExitCode(err) != exitcode.UsageError {
			t.Errorf("PlatformConfig(%d) = %v, want usage error", typ, err)
		}
	}
	if len(ms.Requests()) != 0 {
		t.Error("request sent for an invalid platform type")
	}
}
