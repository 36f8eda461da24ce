package database

const schema = `
CREATE TABLE IF NOT EXISTS organizations (
	id   BIGSERIAL PRIMARY KEY,
	name TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS facilities (
	id              BIGSERIAL PRIMARY KEY,
	organization_id BIGINT NOT NULL REFERENCES organizations(id),
	name            TEXT NOT NULL,
	altitude        DOUBLE PRECISION NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS equipment (
	id                      BIGSERIAL PRIMARY KEY,
	facility_id             BIGINT NOT NULL REFERENCES facilities(id),
	organization_id         BIGINT NOT NULL REFERENCES organizations(id),
	serial                  TEXT NOT NULL,
	number                  TEXT NOT NULL DEFAULT '',
	name                    TEXT NOT NULL DEFAULT '',
	wiring_mode             TEXT NOT NULL,
	oil_mode                TEXT NOT NULL,
	purge_mode              TEXT NOT NULL,
	run_hours_mode          TEXT NOT NULL,
	compressor_count        INT NOT NULL DEFAULT 1,
	bearing_temp_fitted     BOOLEAN NOT NULL DEFAULT FALSE,
	unit_system             TEXT NOT NULL DEFAULT 'imperial',
	refrigerant             TEXT NOT NULL DEFAULT '',
	high_pressure_refrig    BOOLEAN NOT NULL DEFAULT FALSE,
	full_load_amps          DOUBLE PRECISION NOT NULL DEFAULT 0,
	design_cond_approach    DOUBLE PRECISION NOT NULL DEFAULT 0,
	design_evap_approach    DOUBLE PRECISION NOT NULL DEFAULT 0,
	design_cond_delta_t     DOUBLE PRECISION NOT NULL DEFAULT 0,
	design_evap_delta_t     DOUBLE PRECISION NOT NULL DEFAULT 0,
	design_cond_flow        DOUBLE PRECISION NOT NULL DEFAULT 0,
	design_evap_flow        DOUBLE PRECISION NOT NULL DEFAULT 0,
	design_cond_inlet_temp  DOUBLE PRECISION NOT NULL DEFAULT 0,
	design_evap_outlet_temp DOUBLE PRECISION NOT NULL DEFAULT 0,
	design_tons             DOUBLE PRECISION NOT NULL DEFAULT 0,
	design_kw_per_ton       DOUBLE PRECISION NOT NULL DEFAULT 0,
	cond_loss_per_degree    DOUBLE PRECISION NOT NULL DEFAULT 0,
	evap_loss_per_degree    DOUBLE PRECISION NOT NULL DEFAULT 0,
	non_cond_loss_per_pct   DOUBLE PRECISION NOT NULL DEFAULT 0,
	run_hours_per_year      DOUBLE PRECISION NOT NULL DEFAULT 0,
	energy_cost_per_kwh     DOUBLE PRECISION NOT NULL DEFAULT 0,
	emission_factor_kg_kwh  DOUBLE PRECISION NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS users (
	id              BIGSERIAL PRIMARY KEY,
	organization_id BIGINT NOT NULL REFERENCES organizations(id),
	email           TEXT NOT NULL,
	role            TEXT NOT NULL DEFAULT 'organization'
);

CREATE TABLE IF NOT EXISTS user_facilities (
	user_id     BIGINT NOT NULL REFERENCES users(id),
	facility_id BIGINT NOT NULL REFERENCES facilities(id),
	PRIMARY KEY (user_id, facility_id)
);

CREATE TABLE IF NOT EXISTS user_equipment (
	user_id      BIGINT NOT NULL REFERENCES users(id),
	equipment_id BIGINT NOT NULL REFERENCES equipment(id),
	PRIMARY KEY (user_id, equipment_id)
);

CREATE TABLE IF NOT EXISTS alert_rules (
	id              BIGSERIAL PRIMARY KEY,
	user_id         BIGINT NOT NULL REFERENCES users(id),
	metric          TEXT NOT NULL,
	warn_op         TEXT NOT NULL,
	warn_threshold  DOUBLE PRECISION NOT NULL,
	alert_op        TEXT NOT NULL,
	alert_threshold DOUBLE PRECISION NOT NULL,
	notify_email    BOOLEAN NOT NULL DEFAULT TRUE,
	notify_push     BOOLEAN NOT NULL DEFAULT FALSE
);

CREATE TABLE IF NOT EXISTS computed_logs (
	id              BIGSERIAL PRIMARY KEY,
	equipment_id    BIGINT NOT NULL REFERENCES equipment(id),
	facility_id     BIGINT NOT NULL,
	organization_id BIGINT NOT NULL,
	actor_id        BIGINT NOT NULL,
	reading_ts      TIMESTAMPTZ NOT NULL,
	log_date        TEXT NOT NULL DEFAULT '',
	log_time        TEXT NOT NULL DEFAULT '',
	timezone        TEXT NOT NULL DEFAULT '',

	cond_inlet_temp  DOUBLE PRECISION NOT NULL DEFAULT 0,
	cond_outlet_temp DOUBLE PRECISION NOT NULL DEFAULT 0,
	cond_refrig_temp DOUBLE PRECISION NOT NULL DEFAULT 0,
	cond_pressure    DOUBLE PRECISION NOT NULL DEFAULT 0,
	evap_inlet_temp  DOUBLE PRECISION NOT NULL DEFAULT 0,
	evap_outlet_temp DOUBLE PRECISION NOT NULL DEFAULT 0,
	evap_refrig_temp DOUBLE PRECISION NOT NULL DEFAULT 0,
	evap_pressure    DOUBLE PRECISION NOT NULL DEFAULT 0,

	amps_phase1  DOUBLE PRECISION NOT NULL DEFAULT 0,
	amps_phase2  DOUBLE PRECISION NOT NULL DEFAULT 0,
	amps_phase3  DOUBLE PRECISION NOT NULL DEFAULT 0,
	volts_phase1 DOUBLE PRECISION NOT NULL DEFAULT 0,
	volts_phase2 DOUBLE PRECISION NOT NULL DEFAULT 0,
	volts_phase3 DOUBLE PRECISION NOT NULL DEFAULT 0,
	percent_load DOUBLE PRECISION NOT NULL DEFAULT 0,

	oil_pres_high DOUBLE PRECISION NOT NULL DEFAULT 0,
	oil_pres_low  DOUBLE PRECISION NOT NULL DEFAULT 0,
	oil_pres_dif  DOUBLE PRECISION NOT NULL DEFAULT 0,

	bearing_temp     DOUBLE PRECISION NOT NULL DEFAULT 0,
	run_hours        DOUBLE PRECISION NOT NULL DEFAULT 0,
	purge_minutes    DOUBLE PRECISION NOT NULL DEFAULT 0,
	outside_air_temp DOUBLE PRECISION NOT NULL DEFAULT 0,
	notes            TEXT NOT NULL DEFAULT '',

	cond_approach          DOUBLE PRECISION NOT NULL DEFAULT 0,
	evap_approach          DOUBLE PRECISION NOT NULL DEFAULT 0,
	cond_approach_variance DOUBLE PRECISION NOT NULL DEFAULT 0,
	evap_approach_variance DOUBLE PRECISION NOT NULL DEFAULT 0,

	load_factor         DOUBLE PRECISION NOT NULL DEFAULT 0,
	load_factor_display TEXT NOT NULL DEFAULT '',

	inlet_loss         DOUBLE PRECISION NOT NULL DEFAULT 0,
	cond_approach_loss DOUBLE PRECISION NOT NULL DEFAULT 0,
	evap_temp_loss     DOUBLE PRECISION NOT NULL DEFAULT 0,
	evap_approach_loss DOUBLE PRECISION NOT NULL DEFAULT 0,
	non_cond_loss      DOUBLE PRECISION NOT NULL DEFAULT 0,
	delta_loss         DOUBLE PRECISION NOT NULL DEFAULT 0,
	total_loss         DOUBLE PRECISION NOT NULL DEFAULT 0,
	other_loss         DOUBLE PRECISION NOT NULL DEFAULT 0,
	eff_loss_display   DOUBLE PRECISION NOT NULL DEFAULT 0,

	annual_target_cost      DOUBLE PRECISION NOT NULL DEFAULT 0,
	target_cost_per_hour    DOUBLE PRECISION NOT NULL DEFAULT 0,
	inlet_loss_cost         DOUBLE PRECISION NOT NULL DEFAULT 0,
	cond_approach_loss_cost DOUBLE PRECISION NOT NULL DEFAULT 0,
	evap_temp_loss_cost     DOUBLE PRECISION NOT NULL DEFAULT 0,
	evap_approach_loss_cost DOUBLE PRECISION NOT NULL DEFAULT 0,
	non_cond_loss_cost      DOUBLE PRECISION NOT NULL DEFAULT 0,
	delta_loss_cost         DOUBLE PRECISION NOT NULL DEFAULT 0,
	loss_cost               DOUBLE PRECISION NOT NULL DEFAULT 0,
	actual_cost             DOUBLE PRECISION NOT NULL DEFAULT 0,

	cond_flow_est DOUBLE PRECISION NOT NULL DEFAULT 0,
	evap_flow_est DOUBLE PRECISION NOT NULL DEFAULT 0,

	cond_refrig_temp_est  DOUBLE PRECISION NOT NULL DEFAULT 0,
	evap_refrig_temp_est  DOUBLE PRECISION NOT NULL DEFAULT 0,
	calc_cond_refrig_temp DOUBLE PRECISION NOT NULL DEFAULT 0,

	amps_imbalance  DOUBLE PRECISION NOT NULL DEFAULT 0,
	volts_imbalance DOUBLE PRECISION NOT NULL DEFAULT 0,

	final_oil_dif    DOUBLE PRECISION NOT NULL DEFAULT 0,
	non_condensables DOUBLE PRECISION NOT NULL DEFAULT 0,

	last_run_hours DOUBLE PRECISION NOT NULL DEFAULT 0,
	next_run_hours DOUBLE PRECISION NOT NULL DEFAULT 0,
	last_run_ts    TIMESTAMPTZ,
	next_run_ts    TIMESTAMPTZ,
	run_hrs_valid  BOOLEAN NOT NULL DEFAULT TRUE,

	kwh_loss DOUBLE PRECISION NOT NULL DEFAULT 0,
	btu_loss DOUBLE PRECISION NOT NULL DEFAULT 0,
	co2_loss DOUBLE PRECISION NOT NULL DEFAULT 0,

	altitude_correction DOUBLE PRECISION NOT NULL DEFAULT 0,

	fl_inlet_loss         DOUBLE PRECISION NOT NULL DEFAULT 0,
	fl_cond_approach_loss DOUBLE PRECISION NOT NULL DEFAULT 0,
	fl_evap_temp_loss     DOUBLE PRECISION NOT NULL DEFAULT 0,
	fl_evap_approach_loss DOUBLE PRECISION NOT NULL DEFAULT 0,
	fl_non_cond_loss      DOUBLE PRECISION NOT NULL DEFAULT 0,
	fl_delta_loss         DOUBLE PRECISION NOT NULL DEFAULT 0,
	fl_total_loss         DOUBLE PRECISION NOT NULL DEFAULT 0,

	deleted    BOOLEAN NOT NULL DEFAULT FALSE,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

-- Hardens the read-then-write duplicate check: a lost race surfaces as a
-- unique violation instead of a silent double commit.
CREATE UNIQUE INDEX IF NOT EXISTS computed_logs_equipment_ts
	ON computed_logs (equipment_id, reading_ts) WHERE NOT deleted;

CREATE INDEX IF NOT EXISTS computed_logs_equipment_ts_all
	ON computed_logs (equipment_id, reading_ts);

CREATE TABLE IF NOT EXISTS quarantined_readings (
	id           UUID PRIMARY KEY,
	equipment_id BIGINT,
	actor_id     BIGINT NOT NULL,
	reading_ts   TIMESTAMPTZ,
	log_date     TEXT NOT NULL DEFAULT '',
	log_time     TEXT NOT NULL DEFAULT '',
	timezone     TEXT NOT NULL DEFAULT '',

	cond_inlet_temp  DOUBLE PRECISION,
	cond_outlet_temp DOUBLE PRECISION,
	cond_refrig_temp DOUBLE PRECISION,
	cond_pressure    DOUBLE PRECISION,
	evap_inlet_temp  DOUBLE PRECISION,
	evap_outlet_temp DOUBLE PRECISION,
	evap_refrig_temp DOUBLE PRECISION,
	evap_pressure    DOUBLE PRECISION,

	amps_phase1  DOUBLE PRECISION,
	amps_phase2  DOUBLE PRECISION,
	amps_phase3  DOUBLE PRECISION,
	volts_phase1 DOUBLE PRECISION,
	volts_phase2 DOUBLE PRECISION,
	volts_phase3 DOUBLE PRECISION,

	oil_pres_high DOUBLE PRECISION,
	oil_pres_low  DOUBLE PRECISION,
	oil_pres_dif  DOUBLE PRECISION,

	bearing_temp     DOUBLE PRECISION,
	run_hours        DOUBLE PRECISION,
	purge_minutes    DOUBLE PRECISION,
	outside_air_temp DOUBLE PRECISION,
	notes            TEXT,

	reason     TEXT NOT NULL DEFAULT '',
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS timeline_events (
	id           BIGSERIAL PRIMARY KEY,
	equipment_id BIGINT,
	kind         TEXT NOT NULL,
	description  TEXT NOT NULL DEFAULT '',
	actor_id     BIGINT NOT NULL,
	occurred_at  TIMESTAMPTZ NOT NULL,
	created_at   TIMESTAMPTZ NOT NULL DEFAULT now()
);
`
