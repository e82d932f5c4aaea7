package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/kuldeep27396/prime-backend/internal/config"
)

// ProvisionedRoom is what the video provider hands back for one session.
type ProvisionedRoom struct {
	RoomID           string
	RoomURL          string
	ParticipantToken string
	MentorToken      string
}

// VideoProvider mints and disables rooms on the external conferencing
// service. Implementations must be safe for concurrent use.
type VideoProvider interface {
	CreateRoom(ctx context.Context, name string) (*ProvisionedRoom, error)
	DisableRoom(ctx context.Context, roomID string) error
}

// VideoClient is the HMS-style HTTP implementation of VideoProvider.
type VideoClient struct {
	cfg    config.VideoConfig
	client *http.Client
}

func NewVideoClient(cfg config.VideoConfig) *VideoClient {
	return &VideoClient{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Timeout},
	}
}

type createRoomRequest struct {
	Name       string `json:"name"`
	TemplateID string `json:"template_id,omitempty"`
}

type createRoomResponse struct {
	ID      string `json:"id"`
	RoomURL string `json:"room_url"`
	Tokens  struct {
		Participant string `json:"participant"`
		Mentor      string `json:"mentor"`
	} `json:"tokens"`
}

// CreateRoom mints a room and per-role tokens. The call is bounded by the
// configured timeout and never runs inside a database transaction.
func (c *VideoClient) CreateRoom(ctx context.Context, name string) (*ProvisionedRoom, error) {
	body, err := json.Marshal(createRoomRequest{Name: name, TemplateID: c.cfg.TemplateID})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+"/rooms", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.cfg.AccessKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("video provider returned %d", resp.StatusCode)
	}

	var out createRoomResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, err
	}

	return &ProvisionedRoom{
		RoomID:           out.ID,
		RoomURL:          out.RoomURL,
		ParticipantToken: out.Tokens.Participant,
		MentorToken:      out.Tokens.Mentor,
	}, nil
}

// DisableRoom tells the provider to shut a room down. Disabling an
// already-disabled room is treated as success.
func (c *VideoClient) DisableRoom(ctx context.Context, roomID string) error {
	body := []byte(`{"enabled": false}`)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+"/rooms/"+roomID, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.cfg.AccessKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		log.Debug().Str("room_id", roomID).Msg("room already gone on provider")
		return nil
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("video provider returned %d", resp.StatusCode)
	}
	return nil
}
