// Package script loads dubbing-script interventions from JSON, CSV, or YAML
// exports.
//
// Every format is reduced to rows of named cells. The SCENE, IN, OUT and
// PERSONAJE columns are required together with one dialogue column chosen at
// run time, which lets the same sheet be planned on its source-language or its
// dubbed-language text. Header matching ignores case and surrounding spaces.
package script
