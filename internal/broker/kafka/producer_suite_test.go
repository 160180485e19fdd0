package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/BearBump/ParcelDesk/internal/broker/messages"
	"github.com/BearBump/ParcelDesk/internal/models"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

const statusTopic = "tracking.status_changed"

type writerMock struct {
	mock.Mock
}

func (m *writerMock) WriteMessages(ctx context.Context, msgs ...kafka.Message) error {
	args := m.Called(ctx, msgs)
	return args.Error(0)
}

type StatusChangedPublishSuite struct {
	suite.Suite
	wm  *writerMock
	p   *Producer
	rec *models.TrackingRecord
}

func (s *StatusChangedPublishSuite) SetupTest() {
	s.wm = &writerMock{}
	s.p = newProducerWithWriter(s.wm)
	s.rec = &models.TrackingRecord{
		ID:            42,
		TrackingID:    "TRK-9ZX1",
		Name:          "Asha",
		Email:         "asha@example.com",
		Status:        models.StatusOutForDelivery,
		Location:      "Pune hub",
		EstimatedDate: "2024-06-01",
		UpdatedAt:     time.Date(2024, 5, 30, 9, 0, 0, 0, time.UTC),
	}
}

func (s *StatusChangedPublishSuite) publish(ev messages.TrackingStatusChanged) error {
	b, err := json.Marshal(ev)
	s.Require().NoError(err)
	return s.p.Publish(context.Background(), statusTopic, []byte(ev.TrackingID), b)
}

func (s *StatusChangedPublishSuite) TestKeyedByTrackingCode() {
	var got messages.TrackingStatusChanged
	s.wm.
		On("WriteMessages", mock.Anything, mock.MatchedBy(func(msgs []kafka.Message) bool {
			if len(msgs) != 1 || msgs[0].Topic != statusTopic || string(msgs[0].Key) != "TRK-9ZX1" {
				return false
			}
			return json.Unmarshal(msgs[0].Value, &got) == nil
		})).
		Return(nil).
		Once()

	s.Require().NoError(s.publish(messages.NewTrackingStatusChanged(s.rec)))
	s.wm.AssertExpectations(s.T())

	s.Require().Equal(uint64(42), got.TrackingRecordID)
	s.Require().Equal("Out for delivery", got.Status)
	s.Require().Equal("asha@example.com", got.Email)
	s.Require().Equal("Pune hub", got.Location)
	s.Require().Empty(got.EstimatedTime)
	s.Require().True(s.rec.UpdatedAt.Equal(got.ChangedAt))
}

func (s *StatusChangedPublishSuite) TestWriterErrorWrapped() {
	s.wm.On("WriteMessages", mock.Anything, mock.Anything).Return(errors.New("leader not available")).Once()

	err := s.publish(messages.NewTrackingStatusChanged(s.rec))
	s.Require().EqualError(err, "kafka publish: leader not available")
	s.wm.AssertExpectations(s.T())
}

func (s *StatusChangedPublishSuite) TestSameCodeSamePartition() {
	p := NewProducer([]string{"localhost:0"})
	defer p.Close()

	w, ok := p.w.(*kafka.Writer)
	s.Require().True(ok)
	s.Require().IsType(&kafka.Hash{}, w.Balancer)

	partitions := []int{0, 1, 2, 3, 4, 5}
	first := w.Balancer.Balance(kafka.Message{Key: []byte(s.rec.TrackingID)}, partitions...)
	for i := 0; i < 5; i++ {
		s.Require().Equal(first, w.Balancer.Balance(kafka.Message{Key: []byte(s.rec.TrackingID)}, partitions...))
	}
}

func TestStatusChangedPublishSuite(t *testing.T) {
	suite.Run(t, new(StatusChangedPublishSuite))
}
