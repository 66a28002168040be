// Package descriptor loads declarative form definitions from JSON or YAML
// documents. A document maps form ids to their field-descriptor lists:
//
//	forms:
//	  personal:
//	    title: Personal details
//	    fields:
//	      - name: email
//	        type: string
//	        required: true
//	        validations:
//	          - kind: email
//
// The package bundles the default form definitions; see EmbeddedFS.
package descriptor
