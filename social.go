package main

import "time"

// MarriageStatus reports whether a character is married and to whom.
type MarriageStatus struct {
	IsMarried    bool   `json:"is_married"`
	PartnerName  string `json:"partner_name,omitempty"`
	PartnerLevel int    `json:"partner_level,omitempty"`
	PartnerJob   string `json:"partner_job,omitempty"`
	LovePoint    int64  `json:"love_point,omitempty"`
	MarriedSince string `json:"married_since,omitempty"`
	DurationDays int64  `json:"duration_days,omitempty"`
}

// Friend is one messenger-list contact. Online status needs the game server,
// which this panel has no channel to, so everyone reads as offline.
type Friend struct {
	Account string `json:"account"`
	Status  string `json:"status"`
}

// SocialService reads marriage and friend data from the player database.
type SocialService struct {
	reg *Registry
	now func() time.Time
}

func NewSocialService(reg *Registry) *SocialService {
	return &SocialService{reg: reg, now: time.Now}
}

// Marriage returns a character's marriage status.
func (s *SocialService) Marriage(playerID int64) (MarriageStatus, error) {
	marriage, err := s.reg.SelectOne("player",
		"SELECT * FROM marriage WHERE pid1 = ? OR pid2 = ?", playerID, playerID)
	if err != nil {
		return MarriageStatus{}, err
	}
	if marriage == nil || valueInt(marriage["is_married"]) == 0 {
		return MarriageStatus{IsMarried: false}, nil
	}

	partnerID := valueInt(marriage["pid1"])
	if partnerID == playerID {
		partnerID = valueInt(marriage["pid2"])
	}

	partner, err := s.reg.SelectOne("player",
		"SELECT name, level, job FROM player WHERE id = ?", partnerID)
	if err != nil {
		return MarriageStatus{}, err
	}
	if partner == nil {
		return MarriageStatus{IsMarried: false}, nil
	}

	marriedAt := valueInt(marriage["time"])
	return MarriageStatus{
		IsMarried:    true,
		PartnerName:  valueString(partner["name"]),
		PartnerLevel: int(valueInt(partner["level"])),
		PartnerJob:   jobName(int(valueInt(partner["job"]))),
		LovePoint:    valueInt(marriage["love_point"]),
		MarriedSince: time.Unix(marriedAt, 0).Format("2006-01-02"),
		DurationDays: (s.now().Unix() - marriedAt) / 86400,
	}, nil
}

// Friends lists an account's messenger contacts.
func (s *SocialService) Friends(accountName string) ([]Friend, error) {
	rows, err := s.reg.Select("player",
		"SELECT companion FROM messenger_list WHERE account = ?", accountName)
	if err != nil {
		return nil, err
	}

	friends := make([]Friend, 0, len(rows))
	for _, row := range rows {
		friends = append(friends, Friend{
			Account: valueString(row["companion"]),
			Status:  "offline",
		})
	}
	return friends, nil
}
