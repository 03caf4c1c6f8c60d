// Package prescription extracts medication names from the recognized text of
// a French prescription and resolves them against the medication catalogue.
//
// Extraction is heuristic: a fixed, ordered set of rules tuned for French
// prescriptions, combined by union. Names are normalized into search keys and
// looked up sequentially, so the result order only depends on the candidate
// order and on which lookups succeed.
package prescription
