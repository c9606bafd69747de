// Package prefix resolves which vendor prefixes a property or function needs
// for a configured set of supported browser versions.
//
// Reference data (browser versions and last prefixed versions) is loaded once
// from an embedded YAML file by Default, or built directly with NewData.
package prefix
