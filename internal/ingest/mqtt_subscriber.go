// Package ingest feeds location pings published over MQTT into the location log.
package ingest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"tracewing-backend/internal/geo"
	"tracewing-backend/internal/model"

	mqtt "github.com/eclipse/paho.mqtt.golang"
)

const (
	DefaultTopic   = "tracewing/locations/+"
	connectTimeout = 10 * time.Second
	handleTimeout  = 5 * time.Second
)

// LocationRecorder is satisfied by usecase.AttendanceService.
type LocationRecorder interface {
	RecordLocation(ctx context.Context, employeeID uint, p geo.Point, at time.Time) (*model.LocationSample, error)
}

type locationPayload struct {
	EmployeeID uint       `json:"employee_id"`
	Latitude   *float64   `json:"latitude"`
	Longitude  *float64   `json:"longitude"`
	RecordedAt *time.Time `json:"recorded_at"`
}

type SubscriberConfig struct {
	BrokerURL string
	ClientID  string
	Topic     string
}

// Subscriber turns every message on its topic into a location_update sample.
// Bad payloads and unknown employees are logged and dropped.
type Subscriber struct {
	cfg      SubscriberConfig
	recorder LocationRecorder
	log      *slog.Logger
	client   mqtt.Client
	now      func() time.Time
}

func NewSubscriber(cfg SubscriberConfig, recorder LocationRecorder, log *slog.Logger) *Subscriber {
	if cfg.Topic == "" {
		cfg.Topic = DefaultTopic
	}
	if cfg.ClientID == "" {
		cfg.ClientID = fmt.Sprintf("tracewing-api-%d", time.Now().UnixNano())
	}
	return &Subscriber{cfg: cfg, recorder: recorder, log: log, now: time.Now}
}

// Start connects to the broker and subscribes. Subscriptions are restored
// on every reconnect.
func (s *Subscriber) Start() error {
	opts := mqtt.NewClientOptions().
		AddBroker(s.cfg.BrokerURL).
		SetClientID(s.cfg.ClientID).
		SetOrderMatters(false).
		SetAutoReconnect(true).
		SetConnectTimeout(connectTimeout).
		SetOnConnectHandler(func(c mqtt.Client) {
			token := c.Subscribe(s.cfg.Topic, 1, s.onMessage)
			token.Wait()
			if err := token.Error(); err != nil {
				s.log.Error("mqtt subscribe failed", "topic", s.cfg.Topic, "error", err)
				return
			}
			s.log.Info("mqtt subscribed", "broker", s.cfg.BrokerURL, "topic", s.cfg.Topic)
		}).
		SetConnectionLostHandler(func(_ mqtt.Client, err error) {
			s.log.Warn("mqtt connection lost", "error", err)
		})

	s.client = mqtt.NewClient(opts)
	token := s.client.Connect()
	if !token.WaitTimeout(connectTimeout) {
		return fmt.Errorf("mqtt connect to %s: timed out", s.cfg.BrokerURL)
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("mqtt connect to %s: %w", s.cfg.BrokerURL, err)
	}
	return nil
}

func (s *Subscriber) Stop() {
	if s.client != nil && s.client.IsConnected() {
		s.client.Disconnect(250)
	}
}

func (s *Subscriber) onMessage(_ mqtt.Client, msg mqtt.Message) {
	ctx, cancel := context.WithTimeout(context.Background(), handleTimeout)
	defer cancel()

	if err := s.handle(ctx, msg.Payload()); err != nil {
		s.log.Warn("location message dropped", "topic", msg.Topic(), "error", err)
	}
}

func (s *Subscriber) handle(ctx context.Context, payload []byte) error {
	var p locationPayload
	if err := json.Unmarshal(payload, &p); err != nil {
		return fmt.Errorf("decode payload: %w", err)
	}
	if p.EmployeeID == 0 {
		return errors.New("employee_id is required")
	}
	if p.Latitude == nil || p.Longitude == nil {
		return geo.ErrMissingCoordinates
	}

	at := s.now()
	if p.RecordedAt != nil {
		at = *p.RecordedAt
	}

	sample, err := s.recorder.RecordLocation(ctx, p.EmployeeID, geo.Point{Latitude: *p.Latitude, Longitude: *p.Longitude}, at)
	if err != nil {
		return err
	}
	s.log.Debug("location message recorded", "employee_id", p.EmployeeID, "sample_id", sample.ID, "within_geofence", sample.IsWithinGeofence)
	return nil
}
