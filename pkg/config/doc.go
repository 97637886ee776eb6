// Package config holds the explicit configuration of a report run.
//
// [Config] carries the credentials and endpoints read from the environment
// by [FromEnv]. [Report] describes what the table looks like and how it is
// captioned; [DefaultReport] is the pending-verifications report and
// [LoadReport] overrides it from a TOML file:
//
//	caption   = "Total de verificaciones pendientes"
//	link      = "https://verification.open.uchile.cl/interface"
//	filename  = "tabla_alumnos_por_verificar.png"
//	date_keys = ["date"]
//
//	[[columns]]
//	title    = "Nombre"
//	data_key = "name"
//	width    = 1000
//	align    = "left"
//
// Nothing in this package reads global state; callers pass lookups and
// paths in.
package config
