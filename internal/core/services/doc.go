// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// WorkflowService is the single owner of the document workflow state;
// adapters only ever see snapshots of it.
package services
