package ast

// Node kinds produced by the JavaScript and TypeScript grammars that the
// engine and its analyses care about.
const (
	KindProgram  = "program"
	KindError    = "ERROR"
	KindHashBang = "hash_bang_line"

	// declarations
	KindFunctionDecl          = "function_declaration"
	KindGeneratorDecl         = "generator_function_declaration"
	KindFunctionExpr          = "function_expression"
	KindFunctionExprLegacy    = "function"
	KindGeneratorExpr         = "generator_function"
	KindArrowFunction         = "arrow_function"
	KindMethod                = "method_definition"
	KindClassDecl             = "class_declaration"
	KindAbstractClassDecl     = "abstract_class_declaration"
	KindClassExpr             = "class"
	KindClassBody             = "class_body"
	KindClassHeritage         = "class_heritage"
	KindLexicalDecl           = "lexical_declaration"
	KindVariableDecl          = "variable_declaration"
	KindVariableDeclarator    = "variable_declarator"
	KindFormalParameters      = "formal_parameters"
	KindRequiredParameter     = "required_parameter"
	KindOptionalParameter     = "optional_parameter"
	KindImport                = "import_statement"
	KindImportClause          = "import_clause"
	KindNamespaceImport       = "namespace_import"
	KindNamedImports          = "named_imports"
	KindImportSpecifier       = "import_specifier"
	KindExport                = "export_statement"
	KindTypeAlias             = "type_alias_declaration"
	KindInterface             = "interface_declaration"
	KindEnum                  = "enum_declaration"
	KindAmbient               = "ambient_declaration"
	KindFunctionSignature     = "function_signature"
	KindModuleDecl            = "module"
	KindInternalModule        = "internal_module"
	KindAbstractMethod        = "abstract_method_signature"
	KindImportAlias           = "import_alias"
	KindPublicFieldDefinition = "public_field_definition"
	KindFieldDefinition       = "field_definition"

	// statements
	KindStatementBlock = "statement_block"
	KindExpressionStmt = "expression_statement"
	KindEmptyStmt      = "empty_statement"
	KindIf             = "if_statement"
	KindElse           = "else_clause"
	KindFor            = "for_statement"
	KindForIn          = "for_in_statement"
	KindWhile          = "while_statement"
	KindDo             = "do_statement"
	KindSwitch         = "switch_statement"
	KindSwitchBody     = "switch_body"
	KindSwitchCase     = "switch_case"
	KindSwitchDefault  = "switch_default"
	KindTry            = "try_statement"
	KindCatch          = "catch_clause"
	KindFinally        = "finally_clause"
	KindReturn         = "return_statement"
	KindThrow          = "throw_statement"
	KindBreak          = "break_statement"
	KindContinue       = "continue_statement"
	KindLabeled        = "labeled_statement"
	KindDebugger       = "debugger_statement"
	KindWith           = "with_statement"

	// expressions and patterns
	KindIdentifier             = "identifier"
	KindPropertyIdentifier     = "property_identifier"
	KindShorthandProperty      = "shorthand_property_identifier"
	KindShorthandPattern       = "shorthand_property_identifier_pattern"
	KindStatementIdentifier    = "statement_identifier"
	KindThis                   = "this"
	KindSuper                  = "super"
	KindTrue                   = "true"
	KindFalse                  = "false"
	KindNumber                 = "number"
	KindString                 = "string"
	KindParenthesized          = "parenthesized_expression"
	KindCall                   = "call_expression"
	KindNew                    = "new_expression"
	KindMember                 = "member_expression"
	KindSubscript              = "subscript_expression"
	KindAssignment             = "assignment_expression"
	KindAugmentedAssignment    = "augmented_assignment_expression"
	KindUpdate                 = "update_expression"
	KindBinary                 = "binary_expression"
	KindUnary                  = "unary_expression"
	KindAwait                  = "await_expression"
	KindAssignmentPattern      = "assignment_pattern"
	KindRestPattern            = "rest_pattern"
	KindObjectPattern          = "object_pattern"
	KindArrayPattern           = "array_pattern"
	KindPairPattern            = "pair_pattern"
	KindPair                   = "pair"
	KindArguments              = "arguments"
	KindTypeIdentifier         = "type_identifier"
	KindTypeAnnotation         = "type_annotation"

	KindObjectAssignmentPattern = "object_assignment_pattern"
)

// IsFunction reports whether kind introduces a function body.
func IsFunction(kind string) bool {
	switch kind {
	case KindFunctionDecl, KindGeneratorDecl, KindFunctionExpr, KindFunctionExprLegacy,
		KindGeneratorExpr, KindArrowFunction, KindMethod:
		return true
	}
	return false
}

// IsFunctionExpression reports whether kind is a (possibly named) function
// or generator expression.
func IsFunctionExpression(kind string) bool {
	return kind == KindFunctionExpr || kind == KindFunctionExprLegacy || kind == KindGeneratorExpr
}

// IsClass reports whether kind is a class declaration or expression.
func IsClass(kind string) bool {
	return kind == KindClassDecl || kind == KindAbstractClassDecl || kind == KindClassExpr
}

// IsLoop reports whether kind is an iteration statement.
func IsLoop(kind string) bool {
	switch kind {
	case KindFor, KindForIn, KindWhile, KindDo:
		return true
	}
	return false
}

// IsTypeOnly reports whether kind is a TypeScript declaration that produces
// no runtime code.
func IsTypeOnly(kind string) bool {
	switch kind {
	case KindTypeAlias, KindInterface, KindAmbient, KindFunctionSignature, KindAbstractMethod:
		return true
	}
	return false
}
