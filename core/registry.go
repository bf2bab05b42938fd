package core

import (
	"strings"

	"github.com/google/uuid"

	"pkt.systems/boxchat/schema"
	"pkt.systems/pslog"
)

// IdentitySource produces the identifier assigned to newly registered users.
type IdentitySource interface {
	Identity() (schema.UserID, error)
}

// Registry is the append-only set of users known to one session. It is owned
// by a single controller and is not safe for concurrent use.
type Registry struct {
	ids   IdentitySource
	users []*schema.User
	log   pslog.Logger
}

// NewRegistry constructs an empty registry.
func NewRegistry(ids IdentitySource) *Registry {
	return NewRegistryWithLogger(ids, nil)
}

// NewRegistryWithLogger constructs an empty registry with logging.
func NewRegistryWithLogger(ids IdentitySource, logger pslog.Logger) *Registry {
	return &Registry{ids: ids, log: logger}
}

// Add registers a user under a freshly computed identity. Names are not
// deduplicated; re-adding a name on the same host yields a second record with
// the same ID.
func (r *Registry) Add(name string) (*schema.User, error) {
	normalized, err := schema.NormalizeUserName(name)
	if err != nil {
		return nil, err
	}
	id, err := r.ids.Identity()
	if err != nil {
		return nil, err
	}
	user := &schema.User{Name: normalized, ID: id}
	r.users = append(r.users, user)
	if r.log != nil {
		r.log.Info("user registered", "user", id, "name", normalized, "users", len(r.users))
	}
	return user, nil
}

// FindByID returns the first user with the given ID.
func (r *Registry) FindByID(id schema.UserID) (*schema.User, bool) {
	for _, user := range r.users {
		if user.ID == id {
			return user, true
		}
	}
	return nil, false
}

// FindByName returns the first user with the given name.
func (r *Registry) FindByName(name string) (*schema.User, bool) {
	name = strings.TrimSpace(name)
	for _, user := range r.users {
		if user.Name == name {
			return user, true
		}
	}
	return nil, false
}

// Lookup resolves key as an ID first and as a name second.
func (r *Registry) Lookup(key string) (*schema.User, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return nil, schema.ErrUserNotFound
	}
	if user, ok := r.FindByID(schema.UserID(key)); ok {
		return user, nil
	}
	if user, ok := r.FindByName(key); ok {
		return user, nil
	}
	return nil, schema.ErrUserNotFound
}

// Record appends a chat attributed to user and returns it.
func (r *Registry) Record(user *schema.User, text string) schema.Chat {
	chat := schema.Chat{
		ID:       uuid.New().String(),
		Text:     text,
		UserID:   user.ID,
		UserName: user.Name,
	}
	user.ChatLog = append(user.ChatLog, chat)
	if r.log != nil {
		r.log.Debug("chat recorded", "user", user.ID, "chat", chat.ID, "len", len(text), "log_len", len(user.ChatLog))
	}
	return chat
}

// Users returns the registered users in insertion order.
func (r *Registry) Users() []*schema.User {
	out := make([]*schema.User, len(r.users))
	copy(out, r.users)
	return out
}

// Len reports the number of registered users.
func (r *Registry) Len() int {
	return len(r.users)
}
