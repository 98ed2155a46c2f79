package models

// Role is the single-select position derived from the four persistence-layer
// role flags. The UI never mutates the flags directly; it writes a Role and
// the converters below keep the flags mutually exclusive.
type Role string

const (
	RoleKeeper     Role = "keeper"
	RoleDefender   Role = "defender"
	RoleMidfielder Role = "midfielder"
	RoleAttacker   Role = "attacker"
	RoleNone       Role = ""
)

// Valid reports whether the role is one of the selectable positions.
func (r Role) Valid() bool {
	switch r {
	case RoleKeeper, RoleDefender, RoleMidfielder, RoleAttacker:
		return true
	}
	return false
}

// RoleFlags is the four-boolean representation stored by the platform.
type RoleFlags struct {
	Keeper     bool `json:"role_keeper"`
	Defender   bool `json:"role_defender"`
	Midfielder bool `json:"role_midfielder"`
	Attacker   bool `json:"role_attacker"`
}

// Role derives the single-select value: the first flag set, in the fixed
// precedence keeper, defender, midfielder, attacker.
func (f RoleFlags) Role() Role {
	switch {
	case f.Keeper:
		return RoleKeeper
	case f.Defender:
		return RoleDefender
	case f.Midfielder:
		return RoleMidfielder
	case f.Attacker:
		return RoleAttacker
	}
	return RoleNone
}

// FlagsForRole returns the exclusive flag set for a role.
func FlagsForRole(r Role) RoleFlags {
	return RoleFlags{
		Keeper:     r == RoleKeeper,
		Defender:   r == RoleDefender,
		Midfielder: r == RoleMidfielder,
		Attacker:   r == RoleAttacker,
	}
}

// PlayerPerformanceRecord holds one player's statistics for a match. Rating
// and MVP are platform-authoritative: the console submits the editable
// statistics and merges those two fields back after calculation.
type PlayerPerformanceRecord struct {
	PlayerID  int64  `json:"player_id"`
	MatchID   int64  `json:"match_id,omitempty"`
	Name      string `json:"name,omitempty"`
	TeamLabel string `json:"team_label,omitempty"`

	RoleFlags

	Rating float64 `json:"rating"`
	MVP    bool    `json:"mvp"`

	// Attack.
	MinutesPlayed  int     `json:"minutes_played"`
	Goals          int     `json:"goals"`
	Assists        int     `json:"assists"`
	WasFouled      int     `json:"was_fouled"`
	TotalShots     int     `json:"total_shots"`
	ShotsOnTarget  int     `json:"shots_on_target"`
	ShotsOffTarget int     `json:"shots_off_target"`
	BlockedShots   int     `json:"blocked_shots"`
	ShotAccuracy   float64 `json:"shot_accuracy"`
	ChancesCreated int     `json:"chances_created"`

	// Distribution.
	Touches           int     `json:"touches"`
	PassSuccess       float64 `json:"pass_success"`
	KeyPasses         int     `json:"key_passes"`
	Crosses           int     `json:"crosses"`
	DribblesSucceeded int     `json:"dribbles_succeeded"`

	// Defense.
	TacklesAttempted int `json:"tackles_attempted"`
	TacklesSucceeded int `json:"tackles_succeeded"`
	Interceptions    int `json:"interceptions"`
	Recoveries       int `json:"recoveries"`
	DuelsWon         int `json:"duels_won"`
	AerialsWon       int `json:"aerials_won"`

	// Keeper.
	Saves          int `json:"saves"`
	SavesInsideBox int `json:"saves_inside_box"`
	DivingSaves    int `json:"diving_saves"`
	Punches        int `json:"punches"`
	Throws         int `json:"throws"`
	GoalsConceded  int `json:"goals_conceded"`
}

// statAccessors maps wire field names to typed accessors. Rating is absent
// on purpose: it is read-only on the console.
var statAccessors = map[string]struct {
	get func(*PlayerPerformanceRecord) float64
	set func(*PlayerPerformanceRecord, float64)
}{
	"minutes_played":     {func(r *PlayerPerformanceRecord) float64 { return float64(r.MinutesPlayed) }, func(r *PlayerPerformanceRecord, v float64) { r.MinutesPlayed = int(v) }},
	"goals":              {func(r *PlayerPerformanceRecord) float64 { return float64(r.Goals) }, func(r *PlayerPerformanceRecord, v float64) { r.Goals = int(v) }},
	"assists":            {func(r *PlayerPerformanceRecord) float64 { return float64(r.Assists) }, func(r *PlayerPerformanceRecord, v float64) { r.Assists = int(v) }},
	"was_fouled":         {func(r *PlayerPerformanceRecord) float64 { return float64(r.WasFouled) }, func(r *PlayerPerformanceRecord, v float64) { r.WasFouled = int(v) }},
	"total_shots":        {func(r *PlayerPerformanceRecord) float64 { return float64(r.TotalShots) }, func(r *PlayerPerformanceRecord, v float64) { r.TotalShots = int(v) }},
	"shots_on_target":    {func(r *PlayerPerformanceRecord) float64 { return float64(r.ShotsOnTarget) }, func(r *PlayerPerformanceRecord, v float64) { r.ShotsOnTarget = int(v) }},
	"shots_off_target":   {func(r *PlayerPerformanceRecord) float64 { return float64(r.ShotsOffTarget) }, func(r *PlayerPerformanceRecord, v float64) { r.ShotsOffTarget = int(v) }},
	"blocked_shots":      {func(r *PlayerPerformanceRecord) float64 { return float64(r.BlockedShots) }, func(r *PlayerPerformanceRecord, v float64) { r.BlockedShots = int(v) }},
	"shot_accuracy":      {func(r *PlayerPerformanceRecord) float64 { return r.ShotAccuracy }, func(r *PlayerPerformanceRecord, v float64) { r.ShotAccuracy = v }},
	"chances_created":    {func(r *PlayerPerformanceRecord) float64 { return float64(r.ChancesCreated) }, func(r *PlayerPerformanceRecord, v float64) { r.ChancesCreated = int(v) }},
	"touches":            {func(r *PlayerPerformanceRecord) float64 { return float64(r.Touches) }, func(r *PlayerPerformanceRecord, v float64) { r.Touches = int(v) }},
	"pass_success":       {func(r *PlayerPerformanceRecord) float64 { return r.PassSuccess }, func(r *PlayerPerformanceRecord, v float64) { r.PassSuccess = v }},
	"key_passes":         {func(r *PlayerPerformanceRecord) float64 { return float64(r.KeyPasses) }, func(r *PlayerPerformanceRecord, v float64) { r.KeyPasses = int(v) }},
	"crosses":            {func(r *PlayerPerformanceRecord) float64 { return float64(r.Crosses) }, func(r *PlayerPerformanceRecord, v float64) { r.Crosses = int(v) }},
	"dribbles_succeeded": {func(r *PlayerPerformanceRecord) float64 { return float64(r.DribblesSucceeded) }, func(r *PlayerPerformanceRecord, v float64) { r.DribblesSucceeded = int(v) }},
	"tackles_attempted":  {func(r *PlayerPerformanceRecord) float64 { return float64(r.TacklesAttempted) }, func(r *PlayerPerformanceRecord, v float64) { r.TacklesAttempted = int(v) }},
	"tackles_succeeded":  {func(r *PlayerPerformanceRecord) float64 { return float64(r.TacklesSucceeded) }, func(r *PlayerPerformanceRecord, v float64) { r.TacklesSucceeded = int(v) }},
	"interceptions":      {func(r *PlayerPerformanceRecord) float64 { return float64(r.Interceptions) }, func(r *PlayerPerformanceRecord, v float64) { r.Interceptions = int(v) }},
	"recoveries":         {func(r *PlayerPerformanceRecord) float64 { return float64(r.Recoveries) }, func(r *PlayerPerformanceRecord, v float64) { r.Recoveries = int(v) }},
	"duels_won":          {func(r *PlayerPerformanceRecord) float64 { return float64(r.DuelsWon) }, func(r *PlayerPerformanceRecord, v float64) { r.DuelsWon = int(v) }},
	"aerials_won":        {func(r *PlayerPerformanceRecord) float64 { return float64(r.AerialsWon) }, func(r *PlayerPerformanceRecord, v float64) { r.AerialsWon = int(v) }},
	"saves":              {func(r *PlayerPerformanceRecord) float64 { return float64(r.Saves) }, func(r *PlayerPerformanceRecord, v float64) { r.Saves = int(v) }},
	"saves_inside_box":   {func(r *PlayerPerformanceRecord) float64 { return float64(r.SavesInsideBox) }, func(r *PlayerPerformanceRecord, v float64) { r.SavesInsideBox = int(v) }},
	"diving_saves":       {func(r *PlayerPerformanceRecord) float64 { return float64(r.DivingSaves) }, func(r *PlayerPerformanceRecord, v float64) { r.DivingSaves = int(v) }},
	"punches":            {func(r *PlayerPerformanceRecord) float64 { return float64(r.Punches) }, func(r *PlayerPerformanceRecord, v float64) { r.Punches = int(v) }},
	"throws":             {func(r *PlayerPerformanceRecord) float64 { return float64(r.Throws) }, func(r *PlayerPerformanceRecord, v float64) { r.Throws = int(v) }},
	"goals_conceded":     {func(r *PlayerPerformanceRecord) float64 { return float64(r.GoalsConceded) }, func(r *PlayerPerformanceRecord, v float64) { r.GoalsConceded = int(v) }},
}

// IsStatField reports whether name is an editable statistic.
func IsStatField(name string) bool {
	_, ok := statAccessors[name]
	return ok
}

// Stat reads a statistic by wire name.
func (r *PlayerPerformanceRecord) Stat(name string) (float64, bool) {
	acc, ok := statAccessors[name]
	if !ok {
		return 0, false
	}
	return acc.get(r), true
}

// SetStat writes a statistic by wire name.
func (r *PlayerPerformanceRecord) SetStat(name string, value float64) bool {
	acc, ok := statAccessors[name]
	if !ok {
		return false
	}
	acc.set(r, value)
	return true
}

// MatchPlayer is a roster entry for a match, feeding the performance table.
type MatchPlayer struct {
	PlayerID  int64  `json:"player_id"`
	Name      string `json:"name"`
	TeamID    int64  `json:"team_id"`
	TeamLabel string `json:"team_label"`
}
