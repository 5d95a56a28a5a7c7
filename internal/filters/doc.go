// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package filters provides row filtering for comparison result sets.
//
// The package parses filter expressions to select subsets of result rows
// based on column values. Filters are specified as key-operator-target
// expressions and can be combined using a configurable delimiter
// (default: comma).
//
// Operators include:
//
//   - = : exact match (supports negation with !=)
//   - ~ : case-insensitive match (supports negation with !~)
//   - ^ : prefix match (supports negation with !^)
//   - < : less than (numeric or lexical comparison)
//   - > : greater than (numeric or lexical comparison)
//   - @ : contains substring or member (supports negation with !@)
//   - / : regex match (supports negation with !/)
//
// Examples:
//
//   - "status=differs" : keeps rows whose status equals "differs"
//   - "crate^co" : keeps rows whose crate name starts with "co"
//   - "added>10" : keeps rows with more than ten added lines
//   - "crate!@login" : keeps rows whose crate name does not contain "login"
//   - "artifact/\.diff$" : keeps rows whose artifact matches the regex
//
// A bare key with no operator keeps rows where the column is present and
// non-null.
//
// Filter keys are matched against the OutputKey of attributes (see attrs
// package).
//
// The BuildFilters function parses a comma-delimited (or custom-delimited,
// via FORKCTL_FILTER_DELIM) filter specification string. Invalid
// specifications are logged and skipped, allowing partial filter sets to be
// processed.
//
// FilterDataset filters a set of candidate rows, keeping only those that
// match all provided filter expressions. Attributes specified in the attrs
// parameter determine which fields from the row are included in the
// filtered result.
package filters
