/*
Package templating renders course artifacts with text/template.

A TemplateManager holds one template set: the document and script templates embedded
in the binary, optionally overridden or extended by *.tmpl.* and *.part.* files from a
directory on disk. Render turns a course record and its resolved bundle into an Artifact,
a self-contained HTML document plus the script that drives its interactive demo.

Templates execute against RenderData. Besides the text/template builtins they can call
upper, padID, levelClass, comment, indent and jsStrings. Bundle content is inserted
without escaping, so it must already be valid for its destination; course titles are
escaped by the default templates with the html builtin.
*/
package templating
