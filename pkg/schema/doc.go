// Package schema loads widget inputs and themes from JSON or YAML
// documents on disk or inside an fs.FS.
package schema
