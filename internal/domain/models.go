package domain

import "time"

type Organization struct {
	ID   int64  `db:"id" json:"id"`
	Name string `db:"name" json:"name"`
}

type Facility struct {
	ID             int64   `db:"id" json:"id"`
	OrganizationID int64   `db:"organization_id" json:"organization_id"`
	Name           string  `db:"name" json:"name"`
	Altitude       float64 `db:"altitude" json:"altitude"`
}

// EquipmentProfile is the static per-unit configuration every ingestion
// resolves against: reporting modes plus the design constants the derived
// metric formulas consume.
type EquipmentProfile struct {
	ID             int64  `db:"id" json:"id"`
	FacilityID     int64  `db:"facility_id" json:"facility_id"`
	OrganizationID int64  `db:"organization_id" json:"organization_id"`
	Serial         string `db:"serial" json:"serial"`
	Number         string `db:"number" json:"number"`
	Name           string `db:"name" json:"name"`

	WiringMode        WiringMode   `db:"wiring_mode" json:"wiring_mode"`
	OilMode           OilMode      `db:"oil_mode" json:"oil_mode"`
	PurgeMode         PurgeMode    `db:"purge_mode" json:"purge_mode"`
	RunHoursMode      RunHoursMode `db:"run_hours_mode" json:"run_hours_mode"`
	CompressorCount   int          `db:"compressor_count" json:"compressor_count"`
	BearingTempFitted bool         `db:"bearing_temp_fitted" json:"bearing_temp_fitted"`
	UnitSystem        UnitSystem   `db:"unit_system" json:"unit_system"`

	Refrigerant        string `db:"refrigerant" json:"refrigerant"`
	HighPressureRefrig bool   `db:"high_pressure_refrig" json:"high_pressure_refrig"`

	FullLoadAmps         float64 `db:"full_load_amps" json:"full_load_amps"`
	DesignCondApproach   float64 `db:"design_cond_approach" json:"design_cond_approach"`
	DesignEvapApproach   float64 `db:"design_evap_approach" json:"design_evap_approach"`
	DesignCondDeltaT     float64 `db:"design_cond_delta_t" json:"design_cond_delta_t"`
	DesignEvapDeltaT     float64 `db:"design_evap_delta_t" json:"design_evap_delta_t"`
	DesignCondFlow       float64 `db:"design_cond_flow" json:"design_cond_flow"`
	DesignEvapFlow       float64 `db:"design_evap_flow" json:"design_evap_flow"`
	DesignCondInletTemp  float64 `db:"design_cond_inlet_temp" json:"design_cond_inlet_temp"`
	DesignEvapOutletTemp float64 `db:"design_evap_outlet_temp" json:"design_evap_outlet_temp"`
	DesignTons           float64 `db:"design_tons" json:"design_tons"`
	DesignKWPerTon       float64 `db:"design_kw_per_ton" json:"design_kw_per_ton"`
	CondLossPerDegree    float64 `db:"cond_loss_per_degree" json:"cond_loss_per_degree"`
	EvapLossPerDegree    float64 `db:"evap_loss_per_degree" json:"evap_loss_per_degree"`
	NonCondLossPerPct    float64 `db:"non_cond_loss_per_pct" json:"non_cond_loss_per_pct"`
	RunHoursPerYear      float64 `db:"run_hours_per_year" json:"run_hours_per_year"`
	EnergyCostPerKWH     float64 `db:"energy_cost_per_kwh" json:"energy_cost_per_kwh"`
	EmissionFactorKGKWH  float64 `db:"emission_factor_kg_kwh" json:"emission_factor_kg_kwh"`
}

// Reading is the transient per-ingestion input. Numeric fields are pointers:
// nil means the caller never supplied the value, which the validity gate
// treats the same as NaN.
type Reading struct {
	EquipmentID int64 `json:"equipment_id"`
	ActorID     int64 `json:"actor_id"`

	LogDate  string `json:"log_date"`
	LogTime  string `json:"log_time"`
	Timezone string `json:"timezone"`

	CondInletTemp  *float64 `json:"cond_inlet_temp"`
	CondOutletTemp *float64 `json:"cond_outlet_temp"`
	CondRefrigTemp *float64 `json:"cond_refrig_temp"`
	CondPressure   *float64 `json:"cond_pressure"`
	EvapInletTemp  *float64 `json:"evap_inlet_temp"`
	EvapOutletTemp *float64 `json:"evap_outlet_temp"`
	EvapRefrigTemp *float64 `json:"evap_refrig_temp"`
	EvapPressure   *float64 `json:"evap_pressure"`

	AmpsPhase1  *float64 `json:"amps_phase1"`
	AmpsPhase2  *float64 `json:"amps_phase2"`
	AmpsPhase3  *float64 `json:"amps_phase3"`
	VoltsPhase1 *float64 `json:"volts_phase1"`
	VoltsPhase2 *float64 `json:"volts_phase2"`
	VoltsPhase3 *float64 `json:"volts_phase3"`
	PercentLoad *float64 `json:"percent_load"`

	OilPresHigh *float64 `json:"oil_pres_high"`
	OilPresLow  *float64 `json:"oil_pres_low"`
	OilPresDif  *float64 `json:"oil_pres_dif"`

	BearingTemp    *float64 `json:"bearing_temp"`
	RunHours       *float64 `json:"run_hours"`
	PurgeTimeHr    *float64 `json:"purge_time_hr"`
	PurgeTimeMin   *float64 `json:"purge_time_min"`
	OutsideAirTemp *float64 `json:"outside_air_temp"`
	Notes          *string  `json:"notes"`
}

// ComputedLog is a committed reading: normalized inputs plus every derived
// metric. Soft-deleted rows keep their data but drop out of dedup, neighbor
// search and listings.
type ComputedLog struct {
	ID             int64     `db:"id" json:"id"`
	EquipmentID    int64     `db:"equipment_id" json:"equipment_id"`
	FacilityID     int64     `db:"facility_id" json:"facility_id"`
	OrganizationID int64     `db:"organization_id" json:"organization_id"`
	ActorID        int64     `db:"actor_id" json:"actor_id"`
	ReadingTS      time.Time `db:"reading_ts" json:"reading_ts"`
	LogDate        string    `db:"log_date" json:"log_date"`
	LogTime        string    `db:"log_time" json:"log_time"`
	Timezone       string    `db:"timezone" json:"timezone"`

	CondInletTemp  float64 `db:"cond_inlet_temp" json:"cond_inlet_temp"`
	CondOutletTemp float64 `db:"cond_outlet_temp" json:"cond_outlet_temp"`
	CondRefrigTemp float64 `db:"cond_refrig_temp" json:"cond_refrig_temp"`
	CondPressure   float64 `db:"cond_pressure" json:"cond_pressure"`
	EvapInletTemp  float64 `db:"evap_inlet_temp" json:"evap_inlet_temp"`
	EvapOutletTemp float64 `db:"evap_outlet_temp" json:"evap_outlet_temp"`
	EvapRefrigTemp float64 `db:"evap_refrig_temp" json:"evap_refrig_temp"`
	EvapPressure   float64 `db:"evap_pressure" json:"evap_pressure"`

	AmpsPhase1  float64 `db:"amps_phase1" json:"amps_phase1"`
	AmpsPhase2  float64 `db:"amps_phase2" json:"amps_phase2"`
	AmpsPhase3  float64 `db:"amps_phase3" json:"amps_phase3"`
	VoltsPhase1 float64 `db:"volts_phase1" json:"volts_phase1"`
	VoltsPhase2 float64 `db:"volts_phase2" json:"volts_phase2"`
	VoltsPhase3 float64 `db:"volts_phase3" json:"volts_phase3"`
	PercentLoad float64 `db:"percent_load" json:"percent_load"`

	OilPresHigh float64 `db:"oil_pres_high" json:"oil_pres_high"`
	OilPresLow  float64 `db:"oil_pres_low" json:"oil_pres_low"`
	OilPresDif  float64 `db:"oil_pres_dif" json:"oil_pres_dif"`

	BearingTemp    float64 `db:"bearing_temp" json:"bearing_temp"`
	RunHours       float64 `db:"run_hours" json:"run_hours"`
	PurgeMinutes   float64 `db:"purge_minutes" json:"purge_minutes"`
	OutsideAirTemp float64 `db:"outside_air_temp" json:"outside_air_temp"`
	Notes          string  `db:"notes" json:"notes"`

	CondApproach         float64 `db:"cond_approach" json:"cond_approach"`
	EvapApproach         float64 `db:"evap_approach" json:"evap_approach"`
	CondApproachVariance float64 `db:"cond_approach_variance" json:"cond_approach_variance"`
	EvapApproachVariance float64 `db:"evap_approach_variance" json:"evap_approach_variance"`

	LoadFactor        float64 `db:"load_factor" json:"load_factor"`
	LoadFactorDisplay string  `db:"load_factor_display" json:"load_factor_display"`

	InletLoss        float64 `db:"inlet_loss" json:"inlet_loss"`
	CondApproachLoss float64 `db:"cond_approach_loss" json:"cond_approach_loss"`
	EvapTempLoss     float64 `db:"evap_temp_loss" json:"evap_temp_loss"`
	EvapApproachLoss float64 `db:"evap_approach_loss" json:"evap_approach_loss"`
	NonCondLoss      float64 `db:"non_cond_loss" json:"non_cond_loss"`
	DeltaLoss        float64 `db:"delta_loss" json:"delta_loss"`
	TotalLoss        float64 `db:"total_loss" json:"total_loss"`
	OtherLoss        float64 `db:"other_loss" json:"other_loss"`
	EffLossDisplay   float64 `db:"eff_loss_display" json:"eff_loss_display"`

	AnnualTargetCost     float64 `db:"annual_target_cost" json:"annual_target_cost"`
	TargetCostPerHour    float64 `db:"target_cost_per_hour" json:"target_cost_per_hour"`
	InletLossCost        float64 `db:"inlet_loss_cost" json:"inlet_loss_cost"`
	CondApproachLossCost float64 `db:"cond_approach_loss_cost" json:"cond_approach_loss_cost"`
	EvapTempLossCost     float64 `db:"evap_temp_loss_cost" json:"evap_temp_loss_cost"`
	EvapApproachLossCost float64 `db:"evap_approach_loss_cost" json:"evap_approach_loss_cost"`
	NonCondLossCost      float64 `db:"non_cond_loss_cost" json:"non_cond_loss_cost"`
	DeltaLossCost        float64 `db:"delta_loss_cost" json:"delta_loss_cost"`
	LossCost             float64 `db:"loss_cost" json:"loss_cost"`
	ActualCost           float64 `db:"actual_cost" json:"actual_cost"`

	CondFlowEst float64 `db:"cond_flow_est" json:"cond_flow_est"`
	EvapFlowEst float64 `db:"evap_flow_est" json:"evap_flow_est"`

	CondRefrigTempEst  float64 `db:"cond_refrig_temp_est" json:"cond_refrig_temp_est"`
	EvapRefrigTempEst  float64 `db:"evap_refrig_temp_est" json:"evap_refrig_temp_est"`
	CalcCondRefrigTemp float64 `db:"calc_cond_refrig_temp" json:"calc_cond_refrig_temp"`

	AmpsImbalance  float64 `db:"amps_imbalance" json:"amps_imbalance"`
	VoltsImbalance float64 `db:"volts_imbalance" json:"volts_imbalance"`

	FinalOilDif     float64 `db:"final_oil_dif" json:"final_oil_dif"`
	NonCondensables float64 `db:"non_condensables" json:"non_condensables"`

	LastRunHours float64    `db:"last_run_hours" json:"last_run_hours"`
	NextRunHours float64    `db:"next_run_hours" json:"next_run_hours"`
	LastRunTS    *time.Time `db:"last_run_ts" json:"last_run_ts"`
	NextRunTS    *time.Time `db:"next_run_ts" json:"next_run_ts"`
	RunHrsValid  bool       `db:"run_hrs_valid" json:"run_hrs_valid"`

	KWHLoss float64 `db:"kwh_loss" json:"kwh_loss"`
	BTULoss float64 `db:"btu_loss" json:"btu_loss"`
	CO2Loss float64 `db:"co2_loss" json:"co2_loss"`

	AltitudeCorrection float64 `db:"altitude_correction" json:"altitude_correction"`

	FLInletLoss        float64 `db:"fl_inlet_loss" json:"fl_inlet_loss"`
	FLCondApproachLoss float64 `db:"fl_cond_approach_loss" json:"fl_cond_approach_loss"`
	FLEvapTempLoss     float64 `db:"fl_evap_temp_loss" json:"fl_evap_temp_loss"`
	FLEvapApproachLoss float64 `db:"fl_evap_approach_loss" json:"fl_evap_approach_loss"`
	FLNonCondLoss      float64 `db:"fl_non_cond_loss" json:"fl_non_cond_loss"`
	FLDeltaLoss        float64 `db:"fl_delta_loss" json:"fl_delta_loss"`
	FLTotalLoss        float64 `db:"fl_total_loss" json:"fl_total_loss"`

	Deleted   bool      `db:"deleted" json:"deleted"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// QuarantinedReading keeps the checklist fields of a reading that failed the
// validity gate. Immutable once written.
type QuarantinedReading struct {
	ID          string     `db:"id" json:"id"`
	EquipmentID *int64     `db:"equipment_id" json:"equipment_id"`
	ActorID     int64      `db:"actor_id" json:"actor_id"`
	ReadingTS   *time.Time `db:"reading_ts" json:"reading_ts"`
	LogDate     string     `db:"log_date" json:"log_date"`
	LogTime     string     `db:"log_time" json:"log_time"`
	Timezone    string     `db:"timezone" json:"timezone"`

	CondInletTemp  *float64 `db:"cond_inlet_temp" json:"cond_inlet_temp"`
	CondOutletTemp *float64 `db:"cond_outlet_temp" json:"cond_outlet_temp"`
	CondRefrigTemp *float64 `db:"cond_refrig_temp" json:"cond_refrig_temp"`
	CondPressure   *float64 `db:"cond_pressure" json:"cond_pressure"`
	EvapInletTemp  *float64 `db:"evap_inlet_temp" json:"evap_inlet_temp"`
	EvapOutletTemp *float64 `db:"evap_outlet_temp" json:"evap_outlet_temp"`
	EvapRefrigTemp *float64 `db:"evap_refrig_temp" json:"evap_refrig_temp"`
	EvapPressure   *float64 `db:"evap_pressure" json:"evap_pressure"`

	AmpsPhase1  *float64 `db:"amps_phase1" json:"amps_phase1"`
	AmpsPhase2  *float64 `db:"amps_phase2" json:"amps_phase2"`
	AmpsPhase3  *float64 `db:"amps_phase3" json:"amps_phase3"`
	VoltsPhase1 *float64 `db:"volts_phase1" json:"volts_phase1"`
	VoltsPhase2 *float64 `db:"volts_phase2" json:"volts_phase2"`
	VoltsPhase3 *float64 `db:"volts_phase3" json:"volts_phase3"`

	OilPresHigh *float64 `db:"oil_pres_high" json:"oil_pres_high"`
	OilPresLow  *float64 `db:"oil_pres_low" json:"oil_pres_low"`
	OilPresDif  *float64 `db:"oil_pres_dif" json:"oil_pres_dif"`

	BearingTemp    *float64 `db:"bearing_temp" json:"bearing_temp"`
	RunHours       *float64 `db:"run_hours" json:"run_hours"`
	PurgeMinutes   *float64 `db:"purge_minutes" json:"purge_minutes"`
	OutsideAirTemp *float64 `db:"outside_air_temp" json:"outside_air_temp"`
	Notes          *string  `db:"notes" json:"notes"`

	Reason    string    `db:"reason" json:"reason"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

type TimelineEvent struct {
	ID          int64     `db:"id" json:"id"`
	EquipmentID *int64    `db:"equipment_id" json:"equipment_id"`
	Kind        EventKind `db:"kind" json:"kind"`
	Description string    `db:"description" json:"description"`
	ActorID     int64     `db:"actor_id" json:"actor_id"`
	OccurredAt  time.Time `db:"occurred_at" json:"occurred_at"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

// AlertRule is a per-user threshold rule on one derived metric. The alert
// condition is checked before the warning condition.
type AlertRule struct {
	ID             int64    `db:"id" json:"id"`
	UserID         int64    `db:"user_id" json:"user_id"`
	Metric         string   `db:"metric" json:"metric"`
	WarnOp         Operator `db:"warn_op" json:"warn_op"`
	WarnThreshold  float64  `db:"warn_threshold" json:"warn_threshold"`
	AlertOp        Operator `db:"alert_op" json:"alert_op"`
	AlertThreshold float64  `db:"alert_threshold" json:"alert_threshold"`
	NotifyEmail    bool     `db:"notify_email" json:"notify_email"`
	NotifyPush     bool     `db:"notify_push" json:"notify_push"`
}

type User struct {
	ID             int64     `db:"id" json:"id"`
	OrganizationID int64     `db:"organization_id" json:"organization_id"`
	Email          string    `db:"email" json:"email"`
	Role           RoleScope `db:"role" json:"role"`
	FacilityIDs    []int64   `db:"-" json:"facility_ids"`
	EquipmentIDs   []int64   `db:"-" json:"equipment_ids"`
}
