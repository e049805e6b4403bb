// ABOUTME: Canonical schema and migration wiring for both document kinds
// ABOUTME: Built once by whatever process bootstraps the service

package registry

import (
	"github.com/mkearney/huntstore/pkg/appdata"
	"github.com/mkearney/huntstore/pkg/migration"
	"github.com/mkearney/huntstore/pkg/orgdata"
	"github.com/mkearney/huntstore/pkg/schema"
)

// Schemas builds the schema registry with both document kinds' version
// chains. The result is read-only; build it once and pass it around.
func Schemas() *schema.Registry {
	r := schema.NewRegistry()
	r.RegisterKind(schema.KindApp, appdata.LatestVersion, appdata.Versions()...)
	r.RegisterKind(schema.KindOrg, orgdata.LatestVersion, orgdata.Versions()...)
	return r
}

// Migrations builds the migration engine with both kinds' step chains.
func Migrations() *migration.Engine {
	e := migration.NewEngine()
	e.Register(schema.KindApp, appdata.Migrations()...)
	e.Register(schema.KindOrg, orgdata.Migrations()...)
	return e
}
