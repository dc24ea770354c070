package domain

type Position string

const (
	PositionCenter    Position = "C"
	PositionLeftWing  Position = "LW"
	PositionRightWing Position = "RW"
	PositionDefense   Position = "D"
	PositionGoalie    Position = "G"
)

type ExpiryStatus string

const (
	ExpiryRFA ExpiryStatus = "RFA"
	ExpiryUFA ExpiryStatus = "UFA"
)

// Clause is informational only. The empty value means no clause.
type Clause string

const (
	ClauseNone            Clause = ""
	ClauseNoTrade         Clause = "NTC"
	ClauseNoMovement      Clause = "NMC"
	ClauseModifiedNoTrade Clause = "M-NTC"
)

// Contract money fields are whole dollars.
type Contract struct {
	ID             string       `json:"id" yaml:"id"`
	Name           string       `json:"name" yaml:"name"`
	Position       Position     `json:"position" yaml:"position"`
	Age            int          `json:"age" yaml:"age"`
	CapHit         int64        `json:"capHit" yaml:"cap_hit"`
	AAV            int64        `json:"aav" yaml:"aav"`
	ContractLength int          `json:"contractLength" yaml:"length"`
	ContractYear   int          `json:"contractYear" yaml:"year"`
	ExpiryStatus   ExpiryStatus `json:"expiryStatus" yaml:"expiry"`
	Clause         Clause       `json:"clause,omitempty" yaml:"clause"`
	IsSigned       bool         `json:"isSigned" yaml:"signed"`
	TeamID         string       `json:"teamId" yaml:"team"`

	// display extras, passed through untouched
	Headshot string `json:"headshot,omitempty" yaml:"headshot"`
	Number   int    `json:"number,omitempty" yaml:"number"`
}

// ContractPatch is a partial contract record from an external import.
// Nil fields are left alone when the patch is applied.
type ContractPatch struct {
	CapHit         *int64  `json:"capHit,omitempty"`
	AAV            *int64  `json:"aav,omitempty"`
	ContractLength *int    `json:"contractLength,omitempty"`
	Clause         *Clause `json:"clause,omitempty"`
	IsSigned       *bool   `json:"isSigned,omitempty"`
}

type Team struct {
	ID        string     `json:"id" yaml:"id"`
	Name      string     `json:"name" yaml:"name"`
	City      string     `json:"city" yaml:"city"`
	LogoCode  string     `json:"logoCode" yaml:"logo_code"`
	LogoURL   string     `json:"logoUrl,omitempty" yaml:"logo_url"`
	LTIRUsed  int64      `json:"ltirUsed" yaml:"ltir_used"`
	Roster    []Contract `json:"roster" yaml:"roster"`
	NonRoster []Contract `json:"nonRoster" yaml:"non_roster"`
}

type ChatRole string

const (
	RoleUser  ChatRole = "user"
	RoleModel ChatRole = "model"
)

type ChatMessage struct {
	ID        string   `json:"id"`
	Role      ChatRole `json:"role"`
	Content   string   `json:"content"`
	Timestamp int64    `json:"timestamp"`
}
