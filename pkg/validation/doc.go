// Package validation provides declarative field validation for form-like
// request payloads with a tagged JSON representation.
//
// A Rules slice describes per-field checks that collect into a Result:
//
//	rules := validation.Rules{
//	    validation.Required("email"),
//	    validation.Email("email"),
//	    validation.MinLength("password", 8),
//	}
//	result := rules.Check(req.PostForm)
//	if !result.OK() {
//	    return kiln.JSON(http.StatusUnprocessableEntity, result)
//	}
//
// The serialized Result carries a "__type" discriminator so callers that
// receive it over a forwarded sub-request can detect and rehydrate it with
// FromPayload without relying on status codes.
package validation
