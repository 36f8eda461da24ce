package domain

// WiringMode selects which current/voltage fields a unit reports.
type WiringMode string

const (
	WiringSinglePhase WiringMode = "single_phase"
	WiringThreePhase  WiringMode = "three_phase"
	WiringPercentLoad WiringMode = "percent_load"
	WiringNoVoltage   WiringMode = "no_voltage"
)

func (m WiringMode) Valid() bool {
	switch m {
	case WiringSinglePhase, WiringThreePhase, WiringPercentLoad, WiringNoVoltage:
		return true
	}
	return false
}

// OilMode selects how a unit reports oil pressure.
type OilMode string

const (
	OilHighLow      OilMode = "high_low"
	OilHighOnly     OilMode = "high_only"
	OilDifferential OilMode = "differential"
	OilNotLogged    OilMode = "not_logged"
)

func (m OilMode) Valid() bool {
	switch m {
	case OilHighLow, OilHighOnly, OilDifferential, OilNotLogged:
		return true
	}
	return false
}

// PurgeMode selects how purge run time is entered.
type PurgeMode string

const (
	PurgeMinutesOnly  PurgeMode = "minutes_only"
	PurgeHoursMinutes PurgeMode = "hours_minutes"
	PurgeNone         PurgeMode = "none"
)

func (m PurgeMode) Valid() bool {
	switch m {
	case PurgeMinutesOnly, PurgeHoursMinutes, PurgeNone:
		return true
	}
	return false
}

type RunHoursMode string

const (
	RunHoursTotal         RunHoursMode = "total"
	RunHoursPerCompressor RunHoursMode = "per_compressor"
	RunHoursNotLogged     RunHoursMode = "not_logged"
)

func (m RunHoursMode) Valid() bool {
	switch m {
	case RunHoursTotal, RunHoursPerCompressor, RunHoursNotLogged:
		return true
	}
	return false
}

type UnitSystem string

const (
	UnitsImperial UnitSystem = "imperial"
	UnitsMetric   UnitSystem = "metric"
)

func (u UnitSystem) Valid() bool {
	return u == UnitsImperial || u == UnitsMetric
}

// RoleScope controls which committed logs a user's alert rules see.
type RoleScope string

const (
	RoleOrganization RoleScope = "organization"
	RoleFacility     RoleScope = "facility"
	RoleEquipment    RoleScope = "equipment"
)

// EventKind tags timeline entries by ingestion outcome.
type EventKind string

const (
	EventNewReading    EventKind = "new reading"
	EventEditedReading EventKind = "edited reading"
	EventBadReading    EventKind = "bad reading"
)

// Operator is a threshold comparison in an alert rule.
type Operator string

const (
	OpGreater        Operator = ">"
	OpLess           Operator = "<"
	OpGreaterOrEqual Operator = ">="
	OpLessOrEqual    Operator = "<="
	OpEqual          Operator = "="
)

func (o Operator) Valid() bool {
	switch o {
	case OpGreater, OpLess, OpGreaterOrEqual, OpLessOrEqual, OpEqual:
		return true
	}
	return false
}

// Compare applies the operator with value on the left of the threshold.
func (o Operator) Compare(value, threshold float64) bool {
	switch o {
	case OpGreater:
		return value > threshold
	case OpLess:
		return value < threshold
	case OpGreaterOrEqual:
		return value >= threshold
	case OpLessOrEqual:
		return value <= threshold
	case OpEqual:
		return value == threshold
	}
	return false
}
