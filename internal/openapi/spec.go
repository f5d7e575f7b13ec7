// Package openapi builds the OpenAPI 3.1 document for the portfolio API.
// The API surface is fixed, so the document is assembled programmatically
// once and served as-is.
package openapi

import (
	"github.com/getkin/kin-openapi/openapi3"
)

// Generate builds the complete spec for the portfolio API.
func Generate(baseURL string) *openapi3.T {
	doc := &openapi3.T{
		OpenAPI: "3.1.0",
		Info: &openapi3.Info{
			Title:       "Portfolio API",
			Description: "Backend API for the personal portfolio site: public content reads plus JWT-gated admin management.",
			Version:     "1.0.0",
		},
	}
	if baseURL != "" {
		doc.Servers = openapi3.Servers{{URL: baseURL}}
	}

	components := openapi3.NewComponents()
	components.Schemas = openapi3.Schemas{}
	components.SecuritySchemes = openapi3.SecuritySchemes{
		"bearerAuth": &openapi3.SecuritySchemeRef{
			Value: &openapi3.SecurityScheme{
				Type:         "http",
				Scheme:       "bearer",
				BearerFormat: "JWT",
			},
		},
	}
	doc.Components = &components
	doc.Paths = openapi3.NewPaths()

	addSchemas(doc)
	addAuthPaths(doc)
	addFilePaths(doc)
	addMyInfoPaths(doc)
	addSkillPaths(doc)
	addProjectPaths(doc)
	addSocialMediaPaths(doc)

	return doc
}

func addSchemas(doc *openapi3.T) {
	doc.Components.Schemas["ErrorResponse"] = objectSchema(openapi3.Schemas{
		"error": objectSchema(openapi3.Schemas{
			"code":    intSchema("int32"),
			"message": stringSchema(),
			"field":   stringSchema(),
		}),
	})
	doc.Components.Schemas["LoginResponse"] = objectSchema(openapi3.Schemas{
		"token":      stringSchema(),
		"token_type": stringSchema(),
		"expires_in": intSchema("int32"),
	})
	doc.Components.Schemas["MyInfo"] = objectSchema(openapi3.Schemas{
		"id":      intSchema("int64"),
		"name":    stringSchema(),
		"title":   stringSchema(),
		"email":   stringSchema(),
		"phone":   stringSchema(),
		"aboutMe": stringSchema(),
	})
	doc.Components.Schemas["Skill"] = objectSchema(openapi3.Schemas{
		"id":   intSchema("int64"),
		"name": stringSchema(),
	})
	doc.Components.Schemas["SocialMedia"] = objectSchema(openapi3.Schemas{
		"id":       intSchema("int64"),
		"platform": stringSchema(),
		"link":     stringSchema(),
	})
	doc.Components.Schemas["Project"] = objectSchema(openapi3.Schemas{
		"id":               intSchema("int64"),
		"title":            stringSchema(),
		"industry":         stringSchema(),
		"shortDescription": stringSchema(),
		"description":      stringSchema(),
		"endDate":          &openapi3.SchemaRef{Value: &openapi3.Schema{Type: &openapi3.Types{"string"}, Format: "date-time"}},
		"keyFeatures":      arraySchema(stringSchema()),
		"link":             stringSchema(),
		"imageUrl":         stringSchema(),
		"isSourceCode":     boolSchema(),
	})
	doc.Components.Schemas["ProjectSummary"] = objectSchema(openapi3.Schemas{
		"id":               intSchema("int64"),
		"title":            stringSchema(),
		"shortDescription": stringSchema(),
		"imageUrl":         stringSchema(),
	})
}

func addAuthPaths(doc *openapi3.T) {
	loginBody := objectSchema(openapi3.Schemas{
		"username": stringSchema(),
		"password": stringSchema(),
	})
	doc.Paths.Set("/api/auth/login", &openapi3.PathItem{
		Post: &openapi3.Operation{
			Tags:        []string{"auth"},
			Summary:     "Log in as the admin",
			OperationID: "login",
			RequestBody: jsonRequestBody("Admin credentials", loginBody),
			Responses:   newResponses("200", "Bearer token", schemaRef("LoginResponse")),
		},
	})

	resetBody := objectSchema(openapi3.Schemas{
		"username":        stringSchema(),
		"oldPassword":     stringSchema(),
		"newPassword":     stringSchema(),
		"confirmPassword": stringSchema(),
	})
	doc.Paths.Set("/api/auth/reset-password", &openapi3.PathItem{
		Post: &openapi3.Operation{
			Tags:        []string{"auth"},
			Summary:     "Change the admin password",
			OperationID: "reset_password",
			RequestBody: jsonRequestBody("Old and new password", resetBody),
			Responses:   newResponses("200", "Password updated", anyObjectSchema()),
		},
	})
}

func addFilePaths(doc *openapi3.T) {
	urlResponse := objectSchema(openapi3.Schemas{"url": stringSchema()})

	doc.Paths.Set("/api/files/resume", &openapi3.PathItem{
		Get: &openapi3.Operation{
			Tags:        []string{"files"},
			Summary:     "Download the resume PDF",
			OperationID: "get_resume",
			Responses:   newResponses("200", "Resume PDF stream", anyObjectSchema()),
		},
		Post: adminOperation(&openapi3.Operation{
			Tags:        []string{"files"},
			Summary:     "Upload the resume PDF",
			OperationID: "upload_resume",
			RequestBody: multipartRequestBody("PDF under the \"file\" field, at most 30MB", "file"),
			Responses:   newResponses("200", "Stored file URL", urlResponse),
		}),
	})
	doc.Paths.Set("/api/files/profile-picture", &openapi3.PathItem{
		Post: adminOperation(&openapi3.Operation{
			Tags:        []string{"files"},
			Summary:     "Upload the profile picture",
			OperationID: "upload_profile_picture",
			RequestBody: multipartRequestBody("JPEG or PNG under the \"file\" field, at most 10MB", "file"),
			Responses:   newResponses("200", "Stored file URL", urlResponse),
		}),
	})
}

func addMyInfoPaths(doc *openapi3.T) {
	doc.Paths.Set("/api/my-info", &openapi3.PathItem{
		Get: &openapi3.Operation{
			Tags:        []string{"my-info"},
			Summary:     "Get the personal info",
			OperationID: "get_my_info",
			Responses:   newResponses("200", "Personal info", schemaRef("MyInfo")),
		},
		Put: adminOperation(&openapi3.Operation{
			Tags:        []string{"my-info"},
			Summary:     "Update the personal info",
			OperationID: "update_my_info",
			RequestBody: jsonRequestBody("Replacement personal info", schemaRef("MyInfo")),
			Responses:   newResponses("200", "Updated personal info", schemaRef("MyInfo")),
		}),
	})
}

func addSkillPaths(doc *openapi3.T) {
	skillBody := objectSchema(openapi3.Schemas{"name": stringSchema()})

	doc.Paths.Set("/api/skills", &openapi3.PathItem{
		Get: &openapi3.Operation{
			Tags:        []string{"skills"},
			Summary:     "List skills",
			OperationID: "list_skills",
			Responses:   newResponses("200", "All skills", arraySchema(schemaRef("Skill"))),
		},
		Post: adminOperation(&openapi3.Operation{
			Tags:        []string{"skills"},
			Summary:     "Add a skill",
			OperationID: "create_skill",
			RequestBody: jsonRequestBody("Skill to add", skillBody),
			Responses:   newResponses("201", "Created skill", schemaRef("Skill")),
		}),
	})
	doc.Paths.Set("/api/skills/{id}", &openapi3.PathItem{
		Parameters: idPathParameter(),
		Put: adminOperation(&openapi3.Operation{
			Tags:        []string{"skills"},
			Summary:     "Rename a skill",
			OperationID: "update_skill",
			RequestBody: jsonRequestBody("New skill name", skillBody),
			Responses:   newResponses("200", "Updated skill", schemaRef("Skill")),
		}),
		Delete: adminOperation(&openapi3.Operation{
			Tags:        []string{"skills"},
			Summary:     "Remove a skill",
			OperationID: "delete_skill",
			Responses:   newResponses("204", "Skill removed", nil),
		}),
	})
}

func addProjectPaths(doc *openapi3.T) {
	doc.Paths.Set("/api/projects", &openapi3.PathItem{
		Get: &openapi3.Operation{
			Tags:        []string{"projects"},
			Summary:     "List project summaries",
			OperationID: "list_projects",
			Responses:   newResponses("200", "Project summaries, newest first", arraySchema(schemaRef("ProjectSummary"))),
		},
		Post: adminOperation(&openapi3.Operation{
			Tags:        []string{"projects"},
			Summary:     "Add a project",
			OperationID: "create_project",
			RequestBody: multipartRequestBody("Project fields plus a required \"image\" part (JPEG or PNG, at most 20MB)", "image"),
			Responses:   newResponses("201", "Created project", schemaRef("Project")),
		}),
	})
	doc.Paths.Set("/api/projects/{id}", &openapi3.PathItem{
		Parameters: idPathParameter(),
		Get: &openapi3.Operation{
			Tags:        []string{"projects"},
			Summary:     "Get a project",
			OperationID: "get_project",
			Responses:   newResponses("200", "Full project", schemaRef("Project")),
		},
		Put: adminOperation(&openapi3.Operation{
			Tags:        []string{"projects"},
			Summary:     "Update a project",
			OperationID: "update_project",
			RequestBody: multipartRequestBody("Project fields plus an optional replacement \"image\" part", "image"),
			Responses:   newResponses("200", "Updated project", schemaRef("Project")),
		}),
		Delete: adminOperation(&openapi3.Operation{
			Tags:        []string{"projects"},
			Summary:     "Remove a project and its image",
			OperationID: "delete_project",
			Responses:   newResponses("204", "Project removed", nil),
		}),
	})
}

func addSocialMediaPaths(doc *openapi3.T) {
	socialBody := objectSchema(openapi3.Schemas{
		"platform": stringSchema(),
		"link":     stringSchema(),
	})

	doc.Paths.Set("/api/social-media", &openapi3.PathItem{
		Get: &openapi3.Operation{
			Tags:        []string{"social-media"},
			Summary:     "List social links",
			OperationID: "list_social_media",
			Responses:   newResponses("200", "All social links", arraySchema(schemaRef("SocialMedia"))),
		},
		Post: adminOperation(&openapi3.Operation{
			Tags:        []string{"social-media"},
			Summary:     "Add a social link",
			OperationID: "create_social_media",
			RequestBody: jsonRequestBody("Social link to add", socialBody),
			Responses:   newResponses("201", "Created social link", schemaRef("SocialMedia")),
		}),
	})
	doc.Paths.Set("/api/social-media/{id}", &openapi3.PathItem{
		Parameters: idPathParameter(),
		Put: adminOperation(&openapi3.Operation{
			Tags:        []string{"social-media"},
			Summary:     "Update a social link",
			OperationID: "update_social_media",
			RequestBody: jsonRequestBody("Replacement social link", socialBody),
			Responses:   newResponses("200", "Updated social link", schemaRef("SocialMedia")),
		}),
		Delete: adminOperation(&openapi3.Operation{
			Tags:        []string{"social-media"},
			Summary:     "Remove a social link",
			OperationID: "delete_social_media",
			Responses:   newResponses("204", "Social link removed", nil),
		}),
	})
}

// ─── Builders ───────────────────────────────────────────────────────────────

func stringSchema() *openapi3.SchemaRef {
	return &openapi3.SchemaRef{Value: &openapi3.Schema{Type: &openapi3.Types{"string"}}}
}

func intSchema(format string) *openapi3.SchemaRef {
	return &openapi3.SchemaRef{Value: &openapi3.Schema{Type: &openapi3.Types{"integer"}, Format: format}}
}

func boolSchema() *openapi3.SchemaRef {
	return &openapi3.SchemaRef{Value: &openapi3.Schema{Type: &openapi3.Types{"boolean"}}}
}

func objectSchema(props openapi3.Schemas) *openapi3.SchemaRef {
	return &openapi3.SchemaRef{
		Value: &openapi3.Schema{
			Type:       &openapi3.Types{"object"},
			Properties: props,
		},
	}
}

func anyObjectSchema() *openapi3.SchemaRef {
	return &openapi3.SchemaRef{Value: &openapi3.Schema{Type: &openapi3.Types{"object"}}}
}

func arraySchema(items *openapi3.SchemaRef) *openapi3.SchemaRef {
	return &openapi3.SchemaRef{
		Value: &openapi3.Schema{
			Type:  &openapi3.Types{"array"},
			Items: items,
		},
	}
}

func schemaRef(name string) *openapi3.SchemaRef {
	return openapi3.NewSchemaRef("#/components/schemas/"+name, nil)
}

func jsonRequestBody(description string, schema *openapi3.SchemaRef) *openapi3.RequestBodyRef {
	return &openapi3.RequestBodyRef{
		Value: &openapi3.RequestBody{
			Description: description,
			Required:    true,
			Content:     openapi3.NewContentWithJSONSchemaRef(schema),
		},
	}
}

func multipartRequestBody(description, fileField string) *openapi3.RequestBodyRef {
	return &openapi3.RequestBodyRef{
		Value: &openapi3.RequestBody{
			Description: description,
			Required:    true,
			Content: openapi3.Content{
				"multipart/form-data": &openapi3.MediaType{
					Schema: objectSchema(openapi3.Schemas{
						fileField: &openapi3.SchemaRef{
							Value: &openapi3.Schema{Type: &openapi3.Types{"string"}, Format: "binary"},
						},
					}),
				},
			},
		},
	}
}

// adminOperation marks an operation as requiring the bearer token.
func adminOperation(op *openapi3.Operation) *openapi3.Operation {
	op.Security = &openapi3.SecurityRequirements{{"bearerAuth": {}}}
	return op
}

func idPathParameter() openapi3.Parameters {
	p := openapi3.NewPathParameter("id").
		WithDescription("Numeric record ID.").
		WithSchema(&openapi3.Schema{Type: &openapi3.Types{"integer"}, Format: "int64"})
	return openapi3.Parameters{&openapi3.ParameterRef{Value: p}}
}

// newResponses builds a Responses map with a success response and the
// standard error responses. A nil schema means a bodyless success.
func newResponses(statusCode, description string, schema *openapi3.SchemaRef) *openapi3.Responses {
	responses := openapi3.NewResponses()

	successDesc := description
	success := &openapi3.Response{Description: &successDesc}
	if schema != nil {
		success.Content = openapi3.NewContentWithJSONSchemaRef(schema)
	}
	responses.Set(statusCode, &openapi3.ResponseRef{Value: success})

	errorRef := openapi3.NewSchemaRef("#/components/schemas/ErrorResponse", nil)
	for code, desc := range map[string]string{
		"400": "Bad request",
		"401": "Unauthorized",
		"404": "Not found",
		"500": "Internal server error",
	} {
		d := desc
		responses.Set(code, &openapi3.ResponseRef{
			Value: &openapi3.Response{
				Description: &d,
				Content:     openapi3.NewContentWithJSONSchemaRef(errorRef),
			},
		})
	}

	return responses
}
