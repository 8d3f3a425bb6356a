package types

// SettingValue is a closed tagged value stored in the settings table. Only the
// numeric variant is exercised today; new kinds extend the enum rather than
// reopening the column to arbitrary JSON.
type SettingValue struct {
	Kind   SettingValueKind `json:"kind"`
	Number float64          `json:"number,omitempty"`
}

type SettingValueKind string

const SettingValueNumber SettingValueKind = "number"

func NumberSetting(v float64) SettingValue {
	return SettingValue{Kind: SettingValueNumber, Number: v}
}

// NumberOrZero returns the numeric payload, or 0 for any other variant.
func (v SettingValue) NumberOrZero() float64 {
	if v.Kind != SettingValueNumber {
		return 0
	}
	return v.Number
}
