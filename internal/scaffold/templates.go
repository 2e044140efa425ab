package scaffold

// Component file templates. All use text/template over componentData.
// Two component styles are supported (function declaration and arrow
// constant); the test template adjusts its imports to the detected runner.

const functionComponentTemplate = `import React from 'react';
{{- if eq .Styling "css-modules"}}
import styles from './{{.Name}}.module.css';
{{- end}}
{{- if eq .Styling "styled"}}
import { Container } from './{{.Name}}.styles';
{{- end}}
{{- if .TypeScript}}

export interface {{.Name}}Props {
  children?: React.ReactNode;
}

export function {{.Name}}({ children }: {{.Name}}Props) {
{{- else}}

export function {{.Name}}({ children }) {
{{- end}}
{{- if eq .Styling "css-modules"}}
  return <div className={styles.{{.Camel}}}>{children}</div>;
{{- else if eq .Styling "styled"}}
  return <Container>{children}</Container>;
{{- else}}
  return <div>{children}</div>;
{{- end}}
}
`

const arrowComponentTemplate = `import React from 'react';
{{- if eq .Styling "css-modules"}}
import styles from './{{.Name}}.module.css';
{{- end}}
{{- if eq .Styling "styled"}}
import { Container } from './{{.Name}}.styles';
{{- end}}
{{- if .TypeScript}}

export interface {{.Name}}Props {
  children?: React.ReactNode;
}

export const {{.Name}} = ({ children }: {{.Name}}Props) => {
{{- else}}

export const {{.Name}} = ({ children }) => {
{{- end}}
{{- if eq .Styling "css-modules"}}
  return <div className={styles.{{.Camel}}}>{children}</div>;
{{- else if eq .Styling "styled"}}
  return <Container>{children}</Container>;
{{- else}}
  return <div>{children}</div>;
{{- end}}
};
`

const testTemplate = `{{- if eq .TestRunner "vitest"}}
import { describe, expect, it } from 'vitest';
{{- end}}
import { render, screen } from '@testing-library/react';
import { {{.Name}} } from './{{.Name}}';

describe('{{.Name}}', () => {
  it('renders its children', () => {
    render(<{{.Name}}>content</{{.Name}}>);
    expect(screen.getByText('content')).toBeInTheDocument();
  });
});
`

const storiesTemplate = `{{- if .TypeScript}}
import type { Meta, StoryObj } from '@storybook/react';
import { {{.Name}} } from './{{.Name}}';

const meta: Meta<typeof {{.Name}}> = {
  title: 'Components/{{.Name}}',
  component: {{.Name}},
};

export default meta;
type Story = StoryObj<typeof {{.Name}}>;

export const Default: Story = {
  args: { children: '{{.Name}}' },
};
{{- else}}
import { {{.Name}} } from './{{.Name}}';

export default {
  title: 'Components/{{.Name}}',
  component: {{.Name}},
};

export const Default = {
  args: { children: '{{.Name}}' },
};
{{- end}}
`

const cssModuleTemplate = `.{{.Camel}} {
  display: block;
}
`

const styledTemplate = `import styled from 'styled-components';

export const Container = styled.div` + "`" + `
  display: block;
` + "`" + `;
`

const indexTemplate = `export { {{.Name}} } from './{{.Name}}';
{{- if .TypeScript}}
export type { {{.Name}}Props } from './{{.Name}}';
{{- end}}
`
