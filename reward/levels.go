package reward

import (
	"fmt"
	"math"
)

// Level is one named bracket of accumulated points. MaxPoints < 0 marks an
// unbounded top bracket.
type Level struct {
	Name       string   `mapstructure:"name" json:"name"`
	MinPoints  int      `mapstructure:"min_points" json:"min_points"`
	MaxPoints  int      `mapstructure:"max_points" json:"max_points"`
	Color      string   `mapstructure:"color" json:"color"`
	Icon       string   `mapstructure:"icon" json:"icon"`
	Privileges []string `mapstructure:"privileges" json:"privileges"`
	BonusRate  float64  `mapstructure:"bonus_rate" json:"bonus_rate"`
}

// Unbounded reports whether the level has no upper point bound.
func (l Level) Unbounded() bool {
	return l.MaxPoints < 0
}

// Contains reports whether a point total falls inside the level's bracket.
func (l Level) Contains(points int) bool {
	if points < l.MinPoints {
		return false
	}
	return l.Unbounded() || points <= l.MaxPoints
}

var levels = DefaultLevels()

// DefaultLevels returns the built-in five-tier level table.
func DefaultLevels() []Level {
	return []Level{
		{Name: "慧眼新人", MinPoints: 0, MaxPoints: 499, Color: "gray", Icon: "🌟",
			Privileges: []string{"基础推荐权限"}, BonusRate: 0},
		{Name: "识人有术", MinPoints: 500, MaxPoints: 1499, Color: "blue", Icon: "🔍",
			Privileges: []string{"优先展示推荐", "专属标识"}, BonusRate: 0},
		{Name: "伯乐千里", MinPoints: 1500, MaxPoints: 4999, Color: "purple", Icon: "🏃",
			Privileges: []string{"内推绿色通道", "奖金+5%"}, BonusRate: 0.05},
		{Name: "百里挑一", MinPoints: 5000, MaxPoints: 9999, Color: "orange", Icon: "💎",
			Privileges: []string{"企业直通车", "奖金+10%"}, BonusRate: 0.10},
		{Name: "慧眼识珠", MinPoints: 10000, MaxPoints: -1, Color: "gold", Icon: "👑",
			Privileges: []string{"平台合伙人", "奖金+15%"}, BonusRate: 0.15},
	}
}

// ConfigureLevels replaces the level table after asserting it is ascending,
// contiguous and gap-free, starts at zero and ends unbounded. Those
// invariants are what make LevelByPoints total over the non-negative
// integers.
func ConfigureLevels(table []Level) error {
	if len(table) == 0 {
		return fmt.Errorf("reward: level table is empty")
	}
	if table[0].MinPoints != 0 {
		return fmt.Errorf("reward: lowest level must start at 0 points, got %d", table[0].MinPoints)
	}
	for i, l := range table {
		last := i == len(table)-1
		if last {
			if !l.Unbounded() {
				return fmt.Errorf("reward: top level %q must be unbounded", l.Name)
			}
			continue
		}
		if l.Unbounded() || l.MaxPoints < l.MinPoints {
			return fmt.Errorf("reward: level %q has bad bounds [%d, %d]", l.Name, l.MinPoints, l.MaxPoints)
		}
		if table[i+1].MinPoints != l.MaxPoints+1 {
			return fmt.Errorf("reward: gap or overlap between %q and %q", l.Name, table[i+1].Name)
		}
		if l.BonusRate < 0 || l.BonusRate > 1 {
			return fmt.Errorf("reward: level %q has bonus rate %v outside [0,1]", l.Name, l.BonusRate)
		}
	}
	levels = table
	return nil
}

// Levels returns the active level table in ascending order.
func Levels() []Level {
	out := make([]Level, len(levels))
	copy(out, levels)
	return out
}

// LevelByPoints maps a point total to its level. The table invariants make
// the lookup total; negative totals fall back to the lowest level.
func LevelByPoints(points int) Level {
	for _, l := range levels {
		if l.Contains(points) {
			return l
		}
	}
	return levels[0]
}

// LevelProgress is the percentage position within the current level's point
// window, in [0, 100]. The unbounded top level always reports 100.
func LevelProgress(points int) float64 {
	l := LevelByPoints(points)
	if l.Unbounded() {
		return 100
	}
	progress := float64(points-l.MinPoints) / float64(l.MaxPoints-l.MinPoints) * 100
	return math.Min(math.Max(progress, 0), 100)
}

// PointsForNextLevel is how many more points reach the next level, or nil at
// the top.
func PointsForNextLevel(points int) *int {
	current := LevelByPoints(points)
	for _, l := range levels {
		if l.MinPoints > current.MaxPoints && !current.Unbounded() {
			needed := l.MinPoints - points
			return &needed
		}
	}
	return nil
}

// LevelBonus is the level's multiplicative bonus applied to a base cash
// amount, rounded to the nearest integer.
func LevelBonus(baseAmount, points int) int {
	l := LevelByPoints(points)
	return int(math.Round(float64(baseAmount) * l.BonusRate))
}
