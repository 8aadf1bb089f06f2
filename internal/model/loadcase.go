package model

import (
	"fmt"
	"strings"
)

// LoadCase is a primary load case number as numbered in the analysis model.
type LoadCase int

const (
	LoadCaseWindColumnGX              LoadCase = 1101
	LoadCaseWindTierGX                LoadCase = 1102
	LoadCaseWindColumnGXOpposite      LoadCase = 1201
	LoadCaseWindTierGXOpposite        LoadCase = 1202
	LoadCaseWindColumnGZ              LoadCase = 1301
	LoadCaseWindColumnGZOpposite      LoadCase = 1401
	LoadCaseSelfWeight                LoadCase = 101
	LoadCaseDeadLoadElecIns           LoadCase = 103
	LoadCaseLiveLoad                  LoadCase = 201
	LoadCaseEmptyLoad                 LoadCase = 301
	LoadCaseOperatingLoad             LoadCase = 401
	LoadCaseThermalGravityGX          LoadCase = 6
	LoadCaseThermalGravityGZ          LoadCase = 7
	LoadCaseThermalLateralGX          LoadCase = 8
	LoadCaseThermalLateralGZ          LoadCase = 9
	LoadCaseContingencyLoadTransverse LoadCase = 31
)

var loadCaseNames = map[LoadCase]string{
	LoadCaseWindColumnGX:              "WindColumn_GX",
	LoadCaseWindTierGX:                "WindTier_GX",
	LoadCaseWindColumnGXOpposite:      "WindColumn_GX_Opposite",
	LoadCaseWindTierGXOpposite:        "WindTier_GX_Opposite",
	LoadCaseWindColumnGZ:              "WindColumn_GZ",
	LoadCaseWindColumnGZOpposite:      "WindColumn_GZ_Opposite",
	LoadCaseSelfWeight:                "SelfWeight",
	LoadCaseDeadLoadElecIns:           "DeadLoadElecIns",
	LoadCaseLiveLoad:                  "LiveLoad",
	LoadCaseEmptyLoad:                 "EmptyLoad",
	LoadCaseOperatingLoad:             "OperatingLoad",
	LoadCaseThermalGravityGX:          "ThermalGravity_GX",
	LoadCaseThermalGravityGZ:          "ThermalGravity_GZ",
	LoadCaseThermalLateralGX:          "ThermalLateral_GX",
	LoadCaseThermalLateralGZ:          "ThermalLateral_GZ",
	LoadCaseContingencyLoadTransverse: "ContingencyLoadTransverse",
}

func (c LoadCase) String() string {
	if name, ok := loadCaseNames[c]; ok {
		return name
	}
	return fmt.Sprintf("LoadCase(%d)", int(c))
}

// IsWind reports whether the case is one of the wind cases.
func (c LoadCase) IsWind() bool {
	return c >= LoadCaseWindColumnGX && c <= LoadCaseWindColumnGZOpposite
}

// AlongZ reports whether the case acts along the global Z axis.
func (c LoadCase) AlongZ() bool {
	switch c {
	case LoadCaseWindColumnGZ, LoadCaseWindColumnGZOpposite,
		LoadCaseThermalGravityGZ, LoadCaseThermalLateralGZ:
		return true
	}
	return false
}

// ParseLoadCase accepts either a case name or its number.
func ParseLoadCase(s string) (LoadCase, error) {
	s = strings.TrimSpace(s)
	for c, name := range loadCaseNames {
		if strings.EqualFold(name, s) {
			return c, nil
		}
	}
	var n int
	if _, err := fmt.Sscanf(s, "%d", &n); err == nil {
		if _, ok := loadCaseNames[LoadCase(n)]; ok {
			return LoadCase(n), nil
		}
	}
	return 0, fmt.Errorf("unknown load case %q", s)
}

// MemberDirection is the axis a member load acts along.
type MemberDirection int

const (
	DirectionX MemberDirection = iota + 1 // local
	DirectionY
	DirectionZ
	DirectionGX // global
	DirectionGY
	DirectionGZ
	DirectionPX // projected
	DirectionPY
	DirectionPZ
)

var directionNames = [...]string{"", "X", "Y", "Z", "GX", "GY", "GZ", "PX", "PY", "PZ"}

func (d MemberDirection) String() string {
	if d < DirectionX || d > DirectionPZ {
		return fmt.Sprintf("MemberDirection(%d)", int(d))
	}
	return directionNames[d]
}

// ParseMemberDirection converts "GY", "gy" etc. to a MemberDirection.
func ParseMemberDirection(s string) (MemberDirection, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	for i := DirectionX; i <= DirectionPZ; i++ {
		if directionNames[i] == s {
			return i, nil
		}
	}
	return 0, fmt.Errorf("unknown member direction %q", s)
}

// MarshalText encodes the direction by name.
func (d MemberDirection) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *MemberDirection) UnmarshalText(b []byte) error {
	v, err := ParseMemberDirection(string(b))
	if err != nil {
		return err
	}
	*d = v
	return nil
}
