package media

var (
	ExtensionFor = extensionFor
	ObjectName   = objectName
)
