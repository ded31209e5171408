package types

type CreateClubReq struct {
	Name        string `json:"name" binding:"required,max=100"`
	ShortName   string `json:"short_name" binding:"omitempty,max=20"`
	Description string `json:"description" binding:"max=2000"`
	Logo        string `json:"logo" binding:"omitempty,max=255"`
	League      string `json:"league" binding:"omitempty,max=100"`
	Country     string `json:"country" binding:"omitempty,max=50"`
	ChainClubID string `json:"chain_club_id" binding:"omitempty,max=66"`
	// JoinPrice, in whole tokens, is only used when the club is also
	// created on-chain.
	JoinPrice string `json:"join_price" binding:"omitempty"`
}

type UpdateClubReq struct {
	Name        *string `json:"name" binding:"omitempty,max=100"`
	Description *string `json:"description" binding:"omitempty,max=2000"`
	Logo        *string `json:"logo" binding:"omitempty,max=255"`
	League      *string `json:"league" binding:"omitempty,max=100"`
	Country     *string `json:"country" binding:"omitempty,max=100"`
}

type CreateFanGroupReq struct {
	Name        string `json:"name" binding:"required,max=100"`
	Description string `json:"description" binding:"max=2000"`
	Logo        string `json:"logo" binding:"omitempty,max=255"`
	ClubID      string `json:"club_id" binding:"omitempty,uuid"`
	IsPublic    *bool  `json:"is_public"`
}

type UpdateFanGroupReq struct {
	Name        *string `json:"name" binding:"omitempty,max=100"`
	Description *string `json:"description" binding:"omitempty,max=2000"`
	Logo        *string `json:"logo" binding:"omitempty,max=255"`
	IsPublic    *bool   `json:"is_public"`
}

type MembershipDecisionReq struct {
	UserID string `json:"user_id" binding:"required,uuid"`
}

type MembershipRoleReq struct {
	UserID string `json:"user_id" binding:"required,uuid"`
	Role   string `json:"role" binding:"required,oneof=MEMBER MODERATOR LEADER"`
}
