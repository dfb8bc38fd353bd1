// Package hcl_adapter reads node libraries and blueprint graphs written in
// HCL and translates them into the format-agnostic config.Model.
//
// A node library declares node types:
//
//	node "branch" {
//	  kind          = "control_flow"
//	  exec_outputs  = ["then", "else"]
//	  template_file = "templates/branch.rs"
//	  param "condition" { type = "bool" }
//	}
//
// A blueprint declares variables, node instances and connections:
//
//	blueprint "player" {
//	  variable "health" { type = "f32" }
//	  node "start" { type = "begin_play" }
//	  node "say" {
//	    type = "print"
//	    input "value" { value = "hello" }
//	  }
//	  connect {
//	    from = "start.then"
//	    to   = "say.exec"
//	  }
//	}
//
// Template files are resolved relative to the manifest that names them and
// are read verbatim, so ${exec.*} and ${param.*} placeholders survive
// loading untouched.
package hcl_adapter
