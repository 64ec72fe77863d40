package telegram

// Update is an inbound Bot API update. Only message updates are acted on;
// every other shape is ignored by the dispatcher.
type Update struct {
	UpdateID int      `json:"update_id"`
	Message  *Message `json:"message"`
}

// Message is the subset of the Bot API message object this service reads.
type Message struct {
	MessageID      int    `json:"message_id"`
	Chat           Chat   `json:"chat"`
	From           *User  `json:"from"`
	Text           string `json:"text"`
	NewChatMembers []User `json:"new_chat_members,omitempty"`
}

// Chat identifies where a message was posted. Negative IDs are groups and
// channels, positive IDs are one-to-one private chats.
type Chat struct {
	ID    int64  `json:"id"`
	Type  string `json:"type"`
	Title string `json:"title,omitempty"`
}

type User struct {
	ID        int64  `json:"id"`
	IsBot     bool   `json:"is_bot"`
	Username  string `json:"username,omitempty"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
}

// DisplayName returns the user's first and last name joined, falling back to
// the username.
func (u User) DisplayName() string {
	name := u.FirstName
	if u.LastName != "" {
		if name != "" {
			name += " "
		}
		name += u.LastName
	}
	if name == "" {
		name = u.Username
	}
	return name
}

// ChatMember is the membership record returned by getChatMember.
type ChatMember struct {
	Status string `json:"status"`
	User   User   `json:"user"`
}
