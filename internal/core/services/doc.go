// Package services implements the driving port interfaces.
// Services orchestrate the planner and the driven ports (adapters):
// PlanService runs load, graph build and search; ManifestService reads and
// stores manifests; WatchService re-plans on file changes; SettingsService
// maps config keys to typed settings.
package services
