// Package session tracks the per-server state a client reconstructs
// from protocol events: the current nick, the set of known channels,
// per-channel membership, and unread flags (spec.md §3/§4.I).
//
// A Session has a single owner (the application goroutine that drains
// a Client's message receiver); no internal locking is done, matching
// spec.md §5 ("the session model is single-owner").
package session

import "strings"

// maxSections bounds the per-user channel-membership bitset. 32
// channels per server comfortably covers ordinary client use; a
// session joining more than that is not supported, matching the
// original model's fixed-size bit vector.
const maxSections = 32

// UserState is a tracked user's view within a Session (spec.md §3).
type UserState struct {
	DisplayName       string
	connectedSections uint32
	IsMain            bool
}

func newUserState(name string, isMain bool) *UserState {
	return &UserState{DisplayName: name, IsMain: isMain}
}

func (u *UserState) joinSection(id int) {
	if id < 0 || id >= maxSections {
		return
	}
	u.connectedSections |= 1 << uint(id)
}

func (u *UserState) quitSection(id int) {
	if id < 0 || id >= maxSections {
		return
	}
	u.connectedSections &^= 1 << uint(id)
}

func (u *UserState) hasJoinedSection(id int) bool {
	if id < 0 || id >= maxSections {
		return false
	}
	return u.connectedSections&(1<<uint(id)) != 0
}

func (u *UserState) hasJoinedAnySection() bool {
	return u.connectedSections != 0
}

// ChannelState is a tracked channel's view within a Session. Channel
// ids are stable and append-only (spec.md §3 invariant).
type ChannelState struct {
	ID                 int
	DisplayName        string
	Topic              string
	HasTopic           bool
	Unread             bool
	HasReceivedMessage bool
}

// Session is per-server state: current nick, current channel, known
// channels, and known users (spec.md §3).
type Session struct {
	users          map[string]*UserState
	channels       []*ChannelState
	channelIDs     map[string]int
	currentChannel string
	currentNick    string
}

// New creates a Session for a just-registered main user, already
// present in users per spec.md §3's invariant ("the main user's nick
// is always present in users").
func New(nick, channel string) *Session {
	s := &Session{
		users:      make(map[string]*UserState),
		channelIDs: make(map[string]int),
	}
	sanitized := sanitizeName(nick)
	s.currentNick = sanitized
	s.currentChannel = strings.ToLower(sanitizeName(channel))
	s.users[strings.ToLower(sanitized)] = newUserState(sanitized, true)
	return s
}

// CurrentNick returns the main user's current nick.
func (s *Session) CurrentNick() string { return s.currentNick }

// CurrentChannel returns the currently selected channel's lowercased key.
func (s *Session) CurrentChannel() string { return s.currentChannel }

// GetTarget implements the §4.I retrieval contract:
// get_target(source, target) = source if target == current_nick, else target.
func (s *Session) GetTarget(source, target string) string {
	if strings.EqualFold(target, s.currentNick) {
		return source
	}
	return target
}

// sanitizeName strips the @-op prefix NAMES replies may carry, per
// the original model's sanitize_name.
func sanitizeName(name string) string {
	return strings.TrimPrefix(name, "@")
}

func (s *Session) channelID(channel string) (int, bool) {
	id, ok := s.channelIDs[strings.ToLower(channel)]
	return id, ok
}

// addChannel returns channel's stable id, allocating one if this is
// the first time the name has been seen.
func (s *Session) addChannel(channel string) int {
	key := strings.ToLower(channel)
	if id, ok := s.channelIDs[key]; ok {
		return id
	}
	id := len(s.channels)
	s.channels = append(s.channels, &ChannelState{ID: id, DisplayName: channel})
	s.channelIDs[key] = id
	return id
}

func (s *Session) getUser(nick string) (*UserState, bool) {
	u, ok := s.users[strings.ToLower(sanitizeName(nick))]
	return u, ok
}

// JoinServer allocates a channel id for a bare server name, with no
// membership change (spec.md §4.I: "JoinServer(server)").
func (s *Session) JoinServer(server string) {
	s.addChannel(server)
}

// Join records nick joining channel. If nick is the main user, it
// also becomes the selected channel (spec.md §4.I).
func (s *Session) Join(channel, nick string) {
	sanitized := sanitizeName(nick)
	id := s.addChannel(channel)

	key := strings.ToLower(sanitized)
	u, ok := s.users[key]
	if !ok {
		u = newUserState(sanitized, false)
		s.users[key] = u
	}
	u.joinSection(id)
	if u.IsMain {
		s.currentChannel = strings.ToLower(channel)
	}
}

// Part records nick leaving channel; a user with no remaining
// memberships is dropped entirely (spec.md §4.I, property 6).
func (s *Session) Part(channel, nick string) {
	key := strings.ToLower(sanitizeName(nick))
	id := s.addChannel(channel)

	u, ok := s.users[key]
	if !ok {
		return
	}
	u.quitSection(id)
	if !u.hasJoinedAnySection() {
		delete(s.users, key)
	}
}

// Quit drops nick from all tracked channels (spec.md §4.I).
func (s *Session) Quit(nick string, reason string) {
	key := strings.ToLower(sanitizeName(nick))
	delete(s.users, key)
}

// Nick renames old to new, moving membership and updating
// current_channel/current_nick if the renamed user was the main user
// or was itself acting as a DM "channel" key (spec.md §4.I).
func (s *Session) Nick(old, new string) {
	oldKey := strings.ToLower(sanitizeName(old))
	sanitizedNew := sanitizeName(new)
	if s.currentChannel == oldKey {
		s.currentChannel = strings.ToLower(sanitizedNew)
	}

	u, ok := s.users[oldKey]
	if !ok {
		return
	}
	delete(s.users, oldKey)

	u.DisplayName = sanitizedNew
	if u.IsMain {
		s.currentNick = sanitizedNew
	}
	s.users[strings.ToLower(sanitizedNew)] = u
}

// UpdateUsers applies Join(channel, nick) for every nick in list, per
// spec.md §4.I ("UpdateUsers(channel, list)").
func (s *Session) UpdateUsers(channel string, nicks []string) {
	for _, nick := range nicks {
		s.Join(channel, nick)
	}
}

// SelectChannel makes channel the current channel and clears its
// unread flag (spec.md §4.I, property 9).
func (s *Session) SelectChannel(channel string) {
	s.currentChannel = strings.ToLower(sanitizeName(channel))
	if id, ok := s.channelID(channel); ok {
		s.channels[id].Unread = false
	}
}

// receivedMessage implements the shared PrivMsg/ActionMsg transition:
// resolve the effective target, mark it as having received a message,
// and mark it unread unless it is already selected or resolves to the
// main user.
func (s *Session) receivedMessage(source, target string) {
	effective := s.GetTarget(source, target)
	id := s.addChannel(effective)
	key := strings.ToLower(sanitizeName(effective))

	isCurrent := s.currentChannel == key

	c := s.channels[id]
	c.HasReceivedMessage = true

	if u, ok := s.getUser(key); ok && u.IsMain {
		return
	}

	c.Unread = !isCurrent
}

// PrivMsg applies a received PRIVMSG to the session (spec.md §4.I).
func (s *Session) PrivMsg(source, target, content string) {
	s.receivedMessage(source, target)
}

// ActionMsg applies a received CTCP ACTION to the session (spec.md §4.I).
func (s *Session) ActionMsg(source, target, content string) {
	s.receivedMessage(source, target)
}

// SetTopic records channel's topic (332/333 replies drive this from
// the application layer).
func (s *Session) SetTopic(channel, topic string) {
	id := s.addChannel(channel)
	s.channels[id].Topic = topic
	s.channels[id].HasTopic = true
}

// IsMainUser reports whether nick is the session's main user.
func (s *Session) IsMainUser(nick string) bool {
	u, ok := s.getUser(nick)
	return ok && u.IsMain
}

// HasUserJoinedChannel reports whether nick currently has a bit set
// for channel (spec.md §4.I retrieval contract).
func (s *Session) HasUserJoinedChannel(nick, channel string) bool {
	id, ok := s.channelID(channel)
	if !ok {
		return false
	}
	u, ok := s.getUser(nick)
	if !ok {
		return false
	}
	return u.hasJoinedSection(id)
}

// GetAllJoinedChannels returns the display names of every channel nick
// currently has a bit set for.
func (s *Session) GetAllJoinedChannels(nick string) []string {
	u, ok := s.getUser(nick)
	if !ok {
		return nil
	}
	var out []string
	for _, c := range s.channels {
		if u.hasJoinedSection(c.ID) {
			out = append(out, c.DisplayName)
		}
	}
	return out
}

// HasUnreadMessage reports channel's unread flag.
func (s *Session) HasUnreadMessage(channel string) bool {
	id, ok := s.channelID(channel)
	if !ok {
		return false
	}
	return s.channels[id].Unread
}

// Channel returns the tracked state for channel, if known.
func (s *Session) Channel(channel string) (*ChannelState, bool) {
	id, ok := s.channelID(channel)
	if !ok {
		return nil, false
	}
	return s.channels[id], true
}

// User returns the tracked state for nick, if known.
func (s *Session) User(nick string) (*UserState, bool) {
	return s.getUser(nick)
}
