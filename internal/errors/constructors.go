package errors

// Convenience functions for common error patterns

// Config errors

func ConfigNotFound(path string) *BuildError {
	return New(CategoryConfig, SeverityFatal, "configuration file not found").
		WithContext("path", path)
}

func ConfigInvalid(field, reason string) *BuildError {
	return New(CategoryConfig, SeverityFatal, "invalid configuration").
		WithContext("field", field).
		WithContext("reason", reason)
}

// Content errors

// DuplicateURL reports two posts normalizing to the same URL.
func DuplicateURL(url, slug, existing string) *BuildError {
	return New(CategoryContent, SeverityFatal, "posts can't have the same url").
		WithContext("ref", url).
		WithContext("slug", slug).
		WithContext("existing", existing)
}

func InvalidMetadata(slug string, cause error) *BuildError {
	return Wrap(cause, CategoryContent, SeverityFatal, "invalid post metadata").
		WithContext("ref", slug)
}

// AssetNotFound reports a relative image or file reference with no file behind it.
// kind is "image" or "file".
func AssetNotFound(kind, ref string) *BuildError {
	return New(CategoryAsset, SeverityFatal, kind+" not found").
		WithContext("ref", ref)
}

// Render errors

func RenderFailed(doc string, cause error) *BuildError {
	return Wrap(cause, CategoryRender, SeverityFatal, "markdown rendering failed").
		WithContext("ref", doc)
}

func TemplateFailed(name string, cause error) *BuildError {
	return Wrap(cause, CategoryTemplate, SeverityFatal, "template execution failed").
		WithContext("ref", name)
}

// Output errors

func FileSystemError(operation string, cause error) *BuildError {
	return Wrap(cause, CategoryFileSystem, SeverityFatal, "filesystem operation failed").
		WithContext("operation", operation)
}

// Internal errors

func InternalError(message string, cause error) *BuildError {
	return Wrap(cause, CategoryInternal, SeverityFatal, message)
}
