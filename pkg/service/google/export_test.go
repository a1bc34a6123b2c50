package google

// EncodeMessage is exported for testing
var EncodeMessage = encodeMessage
