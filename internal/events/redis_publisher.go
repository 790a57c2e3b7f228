package events

import (
	"context"
	"encoding/json"

	"github.com/redis/rueidis"
)

// RedisPublisher sends events as JSON over Redis pub/sub.
type RedisPublisher struct {
	client  rueidis.Client
	channel string
}

func NewRedisPublisher(client rueidis.Client, channel string) *RedisPublisher {
	return &RedisPublisher{
		client:  client,
		channel: channel,
	}
}

func (r *RedisPublisher) Publish(ctx context.Context, event Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	cmd := r.client.B().Publish().Channel(r.channel).Message(string(payload)).Build()
	return r.client.Do(ctx, cmd).Error()
}

// Subscribe calls handle for every event on the channel until ctx is done.
// Messages that do not decode are skipped.
func (r *RedisPublisher) Subscribe(ctx context.Context, handle func(Event)) error {
	cmd := r.client.B().Subscribe().Channel(r.channel).Build()
	return r.client.Receive(ctx, cmd, func(msg rueidis.PubSubMessage) {
		var event Event
		if err := json.Unmarshal([]byte(msg.Message), &event); err != nil {
			return
		}
		handle(event)
	})
}
