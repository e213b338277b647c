package main

import "sort"

// Message is one whisper, oriented around the requesting character.
type Message struct {
	From    string `json:"from"`
	To      string `json:"to"`
	Content string `json:"content"`
	Time    string `json:"time"`
	IsMine  bool   `json:"is_mine"`
}

// Conversation groups whispers exchanged with one contact.
type Conversation struct {
	Contact     string    `json:"contact"`
	LastMessage string    `json:"last_message"`
	LastTime    string    `json:"last_time"`
	Messages    []Message `json:"messages"`
}

// MessageService reads whisper history from the optional chat log.
type MessageService struct {
	reg *Registry
}

func NewMessageService(reg *Registry) *MessageService {
	return &MessageService{reg: reg}
}

// History returns a character's whisper conversations, newest contact first.
// Deployments without chat logging get an empty list.
func (s *MessageService) History(characterName string, limit int) ([]Conversation, error) {
	if !s.reg.TableExists("log", "chat_log") {
		return []Conversation{}, nil
	}

	rows, err := s.reg.Select("log", `
		SELECT who_name, whom_name, msg, `+"`when`"+` FROM chat_log
		WHERE (who_name = ? OR whom_name = ?)
		AND type = 'WHISPER'
		ORDER BY `+"`when`"+` DESC LIMIT ?`,
		characterName, characterName, limit)
	if err != nil {
		return nil, err
	}
	return groupConversations(rows, characterName), nil
}

func groupConversations(rows []map[string]interface{}, myName string) []Conversation {
	byContact := map[string]*Conversation{}
	var order []string

	for _, row := range rows {
		from := valueString(row["who_name"])
		to := valueString(row["whom_name"])
		when := valueString(row["when"])

		contact := from
		if from == myName {
			contact = to
		}

		conv, ok := byContact[contact]
		if !ok {
			conv = &Conversation{Contact: contact}
			byContact[contact] = conv
			order = append(order, contact)
		}

		msg := Message{
			From:    from,
			To:      to,
			Content: valueString(row["msg"]),
			Time:    when,
			IsMine:  from == myName,
		}
		conv.Messages = append(conv.Messages, msg)

		if conv.LastTime == "" || when > conv.LastTime {
			conv.LastMessage = msg.Content
			conv.LastTime = when
		}
	}

	conversations := make([]Conversation, 0, len(byContact))
	for _, contact := range order {
		conversations = append(conversations, *byContact[contact])
	}
	// Timestamps come back as "YYYY-MM-DD HH:MM:SS", so string order is
	// chronological order.
	sort.SliceStable(conversations, func(i, j int) bool {
		return conversations[i].LastTime > conversations[j].LastTime
	})
	return conversations
}

// With returns the whispers exchanged with one contact, oldest first.
func (s *MessageService) With(myName, otherName string, limit int) ([]Message, error) {
	if !s.reg.TableExists("log", "chat_log") {
		return []Message{}, nil
	}

	rows, err := s.reg.Select("log", `
		SELECT who_name, whom_name, msg, `+"`when`"+` FROM chat_log
		WHERE ((who_name = ? AND whom_name = ?) OR (who_name = ? AND whom_name = ?))
		AND type = 'WHISPER'
		ORDER BY `+"`when`"+` DESC LIMIT ?`,
		myName, otherName, otherName, myName, limit)
	if err != nil {
		return nil, err
	}

	messages := make([]Message, 0, len(rows))
	for i := len(rows) - 1; i >= 0; i-- {
		row := rows[i]
		from := valueString(row["who_name"])
		messages = append(messages, Message{
			From:    from,
			To:      valueString(row["whom_name"]),
			Content: valueString(row["msg"]),
			Time:    valueString(row["when"]),
			IsMine:  from == myName,
		})
	}
	return messages, nil
}
