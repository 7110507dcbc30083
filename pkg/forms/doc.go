// Package forms loads intake form definitions from JSON or YAML files and
// ships the built-in event, mentor and mentee forms. One definition drives
// every variant of a form; behaviour differences live in the data (fields,
// rules, completion predicates, transforms), not in code.
package forms
