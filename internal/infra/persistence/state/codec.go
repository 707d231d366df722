// Package state defines the bucket layout shared by every persistence
// backend: one JSON payload per entity collection plus a session bucket.
package state

import (
	"encoding/json"
	"fmt"

	"fleetcore/pkg/domain"
)

// Bucket names. Backends persist exactly these keys.
const (
	BucketUsers         = "users"
	BucketShips         = "ships"
	BucketComponents    = "components"
	BucketJobs          = "jobs"
	BucketNotifications = "notifications"
	BucketSession       = "session"
)

// Buckets lists every bucket in write order.
var Buckets = []string{
	BucketUsers,
	BucketShips,
	BucketComponents,
	BucketJobs,
	BucketNotifications,
	BucketSession,
}

type sessionPayload struct {
	CurrentUser   *string `json:"currentUser"`
	Authenticated bool    `json:"authenticated"`
}

// Encode serializes a snapshot into one JSON payload per bucket.
func Encode(s domain.Snapshot) (map[string][]byte, error) {
	s.Normalize()
	out := make(map[string][]byte, len(Buckets))
	for _, bucket := range Buckets {
		var (
			data []byte
			err  error
		)
		switch bucket {
		case BucketUsers:
			data, err = json.Marshal(s.Users)
		case BucketShips:
			data, err = json.Marshal(s.Ships)
		case BucketComponents:
			data, err = json.Marshal(s.Components)
		case BucketJobs:
			data, err = json.Marshal(s.Jobs)
		case BucketNotifications:
			data, err = json.Marshal(s.Notifications)
		case BucketSession:
			data, err = json.Marshal(sessionPayload{CurrentUser: s.CurrentUserID, Authenticated: s.Authenticated})
		}
		if err != nil {
			return nil, fmt.Errorf("encode %s: %w", bucket, err)
		}
		out[bucket] = data
	}
	return out, nil
}

// Decode rebuilds a snapshot from bucket payloads. Missing buckets yield
// empty collections; a payload that fails to parse fails the whole decode so
// callers can fall back to the seed.
func Decode(raw map[string][]byte) (domain.Snapshot, error) {
	var snapshot domain.Snapshot
	for bucket, payload := range raw {
		if len(payload) == 0 {
			continue
		}
		var err error
		switch bucket {
		case BucketUsers:
			err = json.Unmarshal(payload, &snapshot.Users)
		case BucketShips:
			err = json.Unmarshal(payload, &snapshot.Ships)
		case BucketComponents:
			err = json.Unmarshal(payload, &snapshot.Components)
		case BucketJobs:
			err = json.Unmarshal(payload, &snapshot.Jobs)
		case BucketNotifications:
			err = json.Unmarshal(payload, &snapshot.Notifications)
		case BucketSession:
			var sess sessionPayload
			if err = json.Unmarshal(payload, &sess); err == nil {
				snapshot.CurrentUserID = sess.CurrentUser
				snapshot.Authenticated = sess.Authenticated
			}
		}
		if err != nil {
			return domain.Snapshot{}, fmt.Errorf("decode %s: %w", bucket, err)
		}
	}
	snapshot.Normalize()
	return snapshot, nil
}
